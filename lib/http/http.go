package http

import (
	"net/http"
	"net/http/httputil"
)

func PrettyPrintRequest(req *http.Request) string {
	reqDump, _ := httputil.DumpRequestOut(req, false)
	return string(reqDump)
}

func PrettyPrintResponse(res *http.Response) string {
	resDump, _ := httputil.DumpResponse(res, false)
	return string(resDump)
}
