package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/config"
	"github.com/usecakework/monolog-viewer/lib/logformat"
	"github.com/usecakework/monolog-viewer/lib/logstore"
)

func main() {
	configPtr := flag.String("config", "", "path to a dotenv, yaml or json config file")
	verbosePtr := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	v, err := config.NewViper(*configPtr)
	checkErr(err)

	cfg, err := config.LoadServerConfig(v)
	checkErr(err)

	if *verbosePtr {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(cfg.LogLevel)
	}

	// Open the connection
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		log.Fatalf("impossible to create the connection: %s", err)
	}
	defer db.Close()
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	store, err := logstore.New(db, cfg.TablePrefix, cfg.Limits())
	checkErr(err)

	auth, err := authMiddleware(cfg)
	checkErr(err)

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(&server{
		store:     store,
		pinger:    store,
		formatter: logformat.New(cfg.Location),
		limits:    cfg.Limits(),
	}, auth...)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithFields(log.Fields{"addr": cfg.ListenAddr, "auth": cfg.AuthMode}).Info("Monolog viewer listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err)
	}
}

func checkErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
