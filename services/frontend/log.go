package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/listtable"
	"github.com/usecakework/monolog-viewer/lib/logstore"
)

const (
	perPageCookie = "logs_per_page"
	cookieMaxAge  = 365 * 24 * 60 * 60
)

func (s *server) newTable() *listtable.Table {
	return listtable.New(s.store, s.formatter, listtable.Options{
		Title:         "Monolog Viewer",
		BasePath:      logsPath,
		StylesheetURL: stylesheetPath,
		Limits:        s.limits,
	})
}

// handleLogsPage renders the admin table. Store failures still render the page
// with the "no logs available" state.
func (s *server) handleLogsPage(c *gin.Context) {
	q := s.queryFromRequest(c).Normalize(s.limits)
	table := s.newTable()

	if err := table.PreparePage(c.Request.Context(), q); err == nil {
		// past the end: send the user to the last page
		p := table.ViewModel().Pagination
		if p.TotalPages > 0 && q.Page > p.TotalPages {
			c.Redirect(http.StatusFound, listtable.PageURL(logsPath, q, p.TotalPages))
			return
		}
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := table.Render(c.Writer); err != nil {
		log.WithError(err).Error("Could not render log table")
	}
}

func (s *server) handleGetLogs(c *gin.Context) {
	q := s.queryFromRequest(c).Normalize(s.limits)
	table := s.newTable()

	err := table.PreparePage(c.Request.Context(), q)
	if p := table.ViewModel().Pagination; err == nil && p.TotalPages > 0 && q.Page > p.TotalPages {
		q.Page = p.TotalPages
		err = table.PreparePage(c.Request.Context(), q)
	}
	if err != nil {
		if errors.Is(err, logstore.ErrStoreUnavailable) {
			c.IndentedJSON(http.StatusServiceUnavailable, table.ViewModel())
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": "sorry :( something broke"})
		return
	}

	c.IndentedJSON(http.StatusOK, table.ViewModel())
}

func (s *server) handleHealth(c *gin.Context) {
	if s.pinger != nil {
		if err := s.pinger.Ping(c.Request.Context()); err != nil {
			c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
}

// queryFromRequest reads orderby, order, page (or paged) and per_page from the
// form body or query string. The per_page preference is remembered in a cookie.
func (s *server) queryFromRequest(c *gin.Context) logstore.Query {
	page := intParam(c, "page")
	if page == 0 {
		page = intParam(c, "paged")
	}

	perPage := intParam(c, "per_page")
	if perPage > 0 {
		if s.limits.MaxPerPage > 0 {
			perPage = min(perPage, s.limits.MaxPerPage)
		}
		c.SetCookie(perPageCookie, strconv.Itoa(perPage), cookieMaxAge, "/", "", false, true)
	} else if cookie, err := c.Cookie(perPageCookie); err == nil {
		perPage = atoi(cookie)
	}

	return logstore.Query{
		OrderBy: param(c, "orderby"),
		Order:   param(c, "order"),
		Page:    page,
		PerPage: perPage,
	}
}
