package ioweb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/gnames/gndash/internal/iochart"
	"github.com/gnames/gndash/internal/ioupload"
	gndash "github.com/gnames/gndash/pkg"
	"github.com/gnames/gndash/pkg/charts"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/sampler"
)

const (
	defaultLimit = 100
	maxLimit     = 1000

	notifyTimeout = 10 * time.Second
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": gndash.Version,
	})
}

// upload handles POST /api/v1/datasets. A rejected upload leaves the
// previous dataset of the session in place.
func (s *Server) upload(c *gin.Context) {
	maxBytes := s.maxUploadBytes()
	limit := humanize.Bytes(uint64(maxBytes))
	// room for multipart headers
	c.Request.Body = http.MaxBytesReader(
		c.Writer, c.Request.Body, maxBytes+1<<20,
	)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			failErr(c, ioupload.TooLargeError("upload", limit))
			return
		}
		fail(c, http.StatusBadRequest, kindBadRequest,
			"Please attach a file in the 'file' field.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, kindBadRequest, err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		fail(c, http.StatusBadRequest, kindBadRequest, err.Error())
		return
	}

	raw, err := ioupload.Parse(fh.Filename, data, ioupload.Options{
		FixUTF8:  s.cfg.Upload.FixUTF8,
		MaxBytes: maxBytes,
	})
	if err != nil {
		failErr(c, err)
		return
	}

	snap, err := dataset.Build(raw, fh.Filename, data)
	if err != nil {
		failErr(c, err)
		return
	}

	id := sessionID(c)
	if err = s.store.Put(c.Request.Context(), id, snap); err != nil {
		failErr(c, err)
		return
	}

	slog.Info("Dataset uploaded",
		"session", id, "file", fh.Filename, "rows", len(snap.Records),
		"warnings", len(snap.Warnings))
	go s.notify(context.WithoutCancel(c.Request.Context()),
		dataset.NewEvent(id, snap))

	success(c, http.StatusCreated, gin.H{
		"summary":  snap.Summary(),
		"warnings": snap.Warnings,
	})
}

func (s *Server) notify(ctx context.Context, e dataset.Event) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, e); err != nil {
		slog.Warn("Cannot announce upload",
			"dataset", e.DatasetID, "error", err)
	}
}

// snapshot loads the dataset of the session, answering with an error when
// there is none.
func (s *Server) snapshot(c *gin.Context) (*dataset.Snapshot, bool) {
	snap, err := s.store.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		failErr(c, err)
		return nil, false
	}
	return snap, true
}

func (s *Server) currentDataset(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, gin.H{
		"summary":       snap.Summary(),
		"warnings":      snap.Warnings,
		"map_available": snap.Capabilities.HasLocation,
		"fields":        charts.Fields,
	})
}

func (s *Server) deleteDataset(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), sessionID(c)); err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusOK, nil)
}

func (s *Server) records(c *gin.Context) {
	offset, err := intQuery(c, "offset", 0)
	if err != nil || offset < 0 {
		fail(c, http.StatusBadRequest, kindBadRequest,
			"offset must be a non-negative integer")
		return
	}
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		fail(c, http.StatusBadRequest, kindBadRequest,
			"limit must be an integer from 1 to "+strconv.Itoa(maxLimit))
		return
	}

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	t := snap.Table()
	total := len(t.Records)
	start := min(offset, total)
	end := min(start+limit, total)
	rows := make([]map[string]any, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, t.Row(i))
	}

	success(c, http.StatusOK, gin.H{
		"total":   total,
		"offset":  offset,
		"limit":   limit,
		"columns": t.Columns,
		"rows":    rows,
	})
}

func (s *Server) species(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, snap.Index)
}

func (s *Server) speciesOptions(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	key := c.Param("key")
	opts, found := snap.Index.Options(key)
	if !found {
		fail(c, http.StatusNotFound, kindUnknownSpecies,
			"Species '"+key+"' is not in the dataset")
		return
	}
	success(c, http.StatusOK, gin.H{"key": key, "options": opts})
}

func (s *Server) filters(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	success(c, http.StatusOK, gin.H{
		"views":           snap.Filters.Views,
		"sexes":           snap.Filters.Sexes,
		"hybrid_statuses": snap.Filters.HybridStatuses,
		"defaults":        snap.Filters.Defaults(),
	})
}

func (s *Server) histogram(c *gin.Context) {
	sort, err := charts.ParseSort(c.Query("sort"))
	if err != nil {
		failErr(c, err)
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	h, err := charts.Histogram(snap.Records,
		c.DefaultQuery("x", "Species"),
		c.DefaultQuery("color", "View"),
		sort,
	)
	if err != nil {
		failErr(c, err)
		return
	}

	if c.Query("format") == "png" {
		img, err := iochart.HistogramPNG(h)
		if err != nil {
			failErr(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
		return
	}
	success(c, http.StatusOK, h)
}

func (s *Server) pie(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	p, err := charts.Pie(snap.Records, c.DefaultQuery("var", "Species"))
	if err != nil {
		failErr(c, err)
		return
	}

	if c.Query("format") == "png" {
		img, err := iochart.PiePNG(p)
		if err != nil {
			failErr(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
		return
	}
	success(c, http.StatusOK, p)
}

func (s *Server) locationMap(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	m, err := charts.Map(snap.Records, snap.Capabilities.HasLocation,
		c.DefaultQuery("color", "Species"))
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, http.StatusOK, m)
}

type sampleRequest struct {
	Subspecies     []string `json:"subspecies"`
	Views          []string `json:"views"`
	Sexes          []string `json:"sexes"`
	HybridStatuses []string `json:"hybrid_statuses"`
	Count          *int     `json:"count"`
}

func (s *Server) sampleImages(c *gin.Context) {
	var req sampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, kindBadRequest,
			"Invalid JSON body")
		return
	}
	if len(req.Subspecies) == 0 || len(req.Views) == 0 ||
		len(req.Sexes) == 0 || len(req.HybridStatuses) == 0 {
		fail(c, http.StatusBadRequest, kindNoSelection,
			"Please make a selection.")
		return
	}
	if req.Count != nil &&
		(*req.Count < 1 || *req.Count > sampler.MaxCount) {
		fail(c, http.StatusBadRequest, kindBadRequest,
			"count must be from 1 to "+strconv.Itoa(sampler.MaxCount))
		return
	}

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	q := sampler.Query{
		Selector:       sampler.ParseSelector(req.Subspecies),
		Views:          req.Views,
		Sexes:          req.Sexes,
		HybridStatuses: req.HybridStatuses,
		Count:          req.Count,
	}
	images, err := sampler.Sample(snap.Table(), q, s.newSource())
	if err != nil {
		failErr(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"selector": q.Selector.String(),
		"images":   images,
	})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
