package stats

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

//go:embed web/*
var web embed.FS

var tpl = template.Must(
	template.New("index.html").Funcs(template.FuncMap{
		"minutes": FormatMinutes,
		"percent": func(p float64) int {
			return timeutil.Round(p * 100)
		},
	}).ParseFS(web, "web/index.html"),
)

type TemplateData struct {
	Report Report
	Period string
	Prev   string
	Next   string
}

// Source provides the data a report is computed from. Every request reads it
// again, so the reported week follows Now.
type Source struct {
	Sessions    func() iter.Seq[models.ReadingSession]
	Titles      func() map[string]string
	GoalMinutes func() float64
	Now         func() time.Time
}

type errorHandler func(w http.ResponseWriter, r *http.Request) error

func (h errorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h(w, r)
	if err == nil {
		return
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		http.Error(w, reqErr.Error(), http.StatusBadRequest)
		return
	}

	slog.ErrorContext(r.Context(), "stats request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return e.err.Error()
}

type server struct {
	src Source
}

// refDate reads the optional ?date= query parameter.
func (s *server) refDate(r *http.Request) (time.Time, error) {
	now := s.src.Now()

	date := r.URL.Query().Get("date")
	if date == "" {
		return now, nil
	}

	t, err := timeutil.FromStr(date, now)
	if err != nil {
		return time.Time{}, &requestError{err}
	}

	return t, nil
}

func (s *server) report(ref time.Time) Report {
	return NewReport(s.src.Sessions(), ref, s.src.GoalMinutes(), s.src.Titles())
}

func (s *server) index(w http.ResponseWriter, r *http.Request) error {
	ref, err := s.refDate(r)
	if err != nil {
		return err
	}

	report := s.report(ref)
	last := report.Week.StartDate.AddDate(0, 0, len(report.Week.Days)-1)

	var buf bytes.Buffer

	err = tpl.Execute(&buf, &TemplateData{
		Report: report,
		Period: fmt.Sprintf(
			"%s - %s",
			report.Week.StartDate.Format("January 02, 2006"),
			last.Format("January 02, 2006"),
		),
		Prev: timeutil.DateKey(ref.AddDate(0, 0, -timeutil.DaysInAWeek)),
		Next: timeutil.DateKey(ref.AddDate(0, 0, timeutil.DaysInAWeek)),
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err = w.Write(buf.Bytes())

	return err
}

func (s *server) weekly(w http.ResponseWriter, r *http.Request) error {
	ref, err := s.refDate(r)
	if err != nil {
		return err
	}

	b, err := json.Marshal(s.report(ref))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(b)

	return err
}

// Handler returns the stats routes: an HTML page at / and the report as
// JSON at /api/weekly. Both accept ?date= to pick the last day of the week.
func Handler(src Source) http.Handler {
	if src.Now == nil {
		src.Now = time.Now
	}

	s := &server{src: src}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/", errorHandler(s.index))
	r.Method(http.MethodGet, "/api/weekly", errorHandler(s.weekly))

	return r
}

// Serve runs the stats server until ctx is cancelled.
func Serve(ctx context.Context, port uint, src Source) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           Handler(src),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	pterm.Info.Printfln("serving reading stats on http://localhost:%d", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
