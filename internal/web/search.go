package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/phyten/minigrep/internal/engine"
	"github.com/phyten/minigrep/internal/engine/opts"
	"github.com/phyten/minigrep/internal/output"
)

type errorBody struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// searchHandler runs one search over the request body. Query parameters:
// query (required, taken verbatim), ignore_case, highlight, line_numbers,
// marker.
func (a *App) searchHandler(w http.ResponseWriter, r *http.Request) {
	id := a.NewID()
	w.Header().Set("X-Request-ID", id)
	log := a.Logger.WithField("id", id)

	q := r.URL.Query()
	if _, ok := q["query"]; !ok {
		writeError(w, id, http.StatusBadRequest, "missing query parameter")
		return
	}
	o, err := opts.ApplyWebQueryToOptions(a.Defaults, q)
	if err == nil {
		err = opts.NormalizeAndValidate(&o)
	}
	if err != nil {
		writeError(w, id, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(o.MaxBytes)))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.WithField("limit", tooLarge.Limit).Warn("search body too large")
			writeError(w, id, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, id, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	text := string(body)

	res := engine.Run(o.EngineConfig(output.SelectMarker(o.Marker, output.FormatJSON, nil)), text)
	marked := engine.Run(o.EngineConfig(output.HTMLMarker), text)
	rep := output.NewReport(o.Query, res).WithHTML(marked)
	rep.ID = id

	log.WithFields(logrus.Fields{
		"query":       o.Query,
		"ignore_case": o.IgnoreCase,
		"lines":       rep.Lines,
		"total":       rep.Total,
	}).Info("search")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := output.WriteJSON(w, rep); err != nil {
		log.WithError(err).Warn("write search response")
	}
}

func writeError(w http.ResponseWriter, id string, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{ID: id, Error: msg})
}
