// Package api implements dxd's serve mode: an HTTP surface for submitting
// solve jobs, polling their status, and listing run history, built with
// github.com/go-chi/chi/v5.
package api

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dxdlab/dxd/pkg/block"
	"github.com/dxdlab/dxd/pkg/cache"
	"github.com/dxdlab/dxd/pkg/config"
	"github.com/dxdlab/dxd/pkg/dagnode"
	"github.com/dxdlab/dxd/pkg/engine"
	dxderrors "github.com/dxdlab/dxd/pkg/errors"
	"github.com/dxdlab/dxd/pkg/memo"
	"github.com/dxdlab/dxd/pkg/parse"
	"github.com/dxdlab/dxd/pkg/rowgraph"
	"github.com/dxdlab/dxd/pkg/stopwatch"
	"github.com/dxdlab/dxd/pkg/store"
)

// jobStatus is the lifecycle state of a submitted run.
type jobStatus string

const (
	jobPending jobStatus = "pending"
	jobRunning jobStatus = "running"
	jobDone    jobStatus = "done"
	jobFailed  jobStatus = "failed"
)

type job struct {
	status jobStatus
	record store.RunRecord
	err    string
}

// Server holds the in-memory job registry and the shared dependencies every
// request handler needs. Submitted jobs run on a background goroutine; the
// registry lets GET /runs/{id} poll for completion before the summary is
// durably persisted to Store.
type Server struct {
	mu     sync.Mutex
	jobs   map[string]*job
	store  store.Store
	cache  cache.Cache
	cfg    config.Config
	logger *log.Logger
}

// New builds a Server backed by st for run history and cfg for engine
// defaults. memoCache accelerates repeated submissions of the same matrix
// across replicas; pass cache.NewNullCache() to disable it.
func New(st store.Store, memoCache cache.Cache, cfg config.Config, logger *log.Logger) *Server {
	if memoCache == nil {
		memoCache = cache.NewNullCache()
	}
	return &Server{
		jobs:   make(map[string]*job),
		store:  st,
		cache:  memoCache,
		cfg:    cfg,
		logger: logger,
	}
}

// Router builds the chi mux exposing this server's routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/runs", s.handleSubmit)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Get("/runs", s.handleListRuns)
	r.Get("/healthz", s.handleHealthz)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	runs, err := s.store.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := dxderrors.ValidateRunID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	switch j.status {
	case jobDone:
		writeJSON(w, http.StatusOK, j.record)
	case jobFailed:
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(jobFailed), "error": j.err})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(j.status)})
	}
}

// submitRequest is the POST /runs body: input carries the raw matrix bytes
// base64-encoded so the same legacy formats the CLI reads work over HTTP.
type submitRequest struct {
	Input     []byte `json:"input"`
	Format    int    `json:"format"`
	Algorithm string `json:"algorithm"`
	Detector  string `json:"detector"`
	Threads   int    `json:"threads"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Input) == 0 {
		writeError(w, http.StatusBadRequest, "input is required")
		return
	}
	if err := dxderrors.ValidateFormat(req.Format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Algorithm != "" {
		if err := dxderrors.ValidateAlgorithm(req.Algorithm); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Threads != 0 {
		if err := dxderrors.ValidateThreads(req.Threads); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Detector != "" {
		if err := dxderrors.ValidateDetector(req.Detector); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.jobs[id] = &job{status: jobPending}
	s.mu.Unlock()

	go s.runJob(id, req)

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (s *Server) runJob(id string, req submitRequest) {
	s.setStatus(id, jobRunning)

	started := time.Now()
	rec, err := s.solve(context.Background(), id, req, started)
	if err != nil {
		s.mu.Lock()
		s.jobs[id].status = jobFailed
		s.jobs[id].err = err.Error()
		s.mu.Unlock()
		s.logger.Error("run failed", "id", id, "err", err)
		return
	}

	s.mu.Lock()
	s.jobs[id].status = jobDone
	s.jobs[id].record = rec
	s.mu.Unlock()

	if err := s.store.SaveRun(context.Background(), rec); err != nil {
		s.logger.Error("saving run record", "id", id, "err", err)
	}
}

func (s *Server) setStatus(id string, status jobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.status = status
	}
}

func (s *Server) solve(ctx context.Context, id string, req submitRequest, started time.Time) (store.RunRecord, error) {
	m, err := parse.Parse(parse.Format(req.Format), bytesReader(req.Input))
	if err != nil {
		return store.RunRecord{}, err
	}

	allRows := make([]int32, m.NumRows)
	for i := range allRows {
		allRows[i] = int32(i)
	}
	allCols := make([]int32, m.NumCols)
	for i := range allCols {
		allCols[i] = int32(i)
	}
	blk := block.New(allRows, allCols)

	detKind := req.Detector
	if detKind == "" {
		detKind = s.cfg.DefaultDetector
	}
	var detector rowgraph.Detector
	if detKind == config.DetectorUnionFind {
		detector = rowgraph.NewUnionFindDetector()
	} else {
		detector = rowgraph.NewETTDetector()
	}
	engine.InitializeDetector(m, detector, blk)

	threads := req.Threads
	if threads <= 0 {
		threads = s.cfg.DefaultThreads
	}
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = "dxd"
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "alg:"+algorithm+":")
	scope := cache.Hash(req.Input)

	opts := engine.DefaultOptions()
	opts.Threads = threads
	opts.Parallel = threads > 1
	if opts.Parallel {
		opts.NewDetector = func() rowgraph.Detector {
			if detKind == config.DetectorUnionFind {
				return rowgraph.NewUnionFindDetector()
			}
			return rowgraph.NewETTDetector()
		}
	}
	opts.DecomposeThreshold = s.cfg.DecomposeThreshold
	opts.BuildDAG = false // process-local DAG identities cannot cross the wire
	opts.Remote = memo.NewRemoteAccelerator(s.cache, keyer, scope)

	dag := dagnode.New()
	memoTbl := memo.New()
	sw := stopwatch.New(time.Duration(s.cfg.TimeBudget))
	e := engine.New(m, detector, dag, memoTbl, sw, opts)

	result, _, runErr := e.Run(ctx, blk)
	if runErr != nil && !e.Stats().TimedOut() {
		return store.RunRecord{}, runErr
	}

	finished := time.Now()
	_, exact := result.Exact64()
	return store.RunRecord{
		ID:           id,
		Algorithm:    req.Algorithm,
		InputName:    "inline",
		Detector:     detKind,
		Threads:      threads,
		Elapsed:      finished.Sub(started),
		Count:        result.String(),
		CountExact:   exact,
		PeakBlocks:   e.Stats().PeakBlocks(),
		DAGNodeCount: dag.NumNodes(),
		TimedOut:     e.Stats().TimedOut(),
		StartedAt:    started,
		FinishedAt:   finished,
	}, nil
}
