package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/constants"
	"github.com/iwvelando/bond-trader/pkg/lotfile"
	"github.com/iwvelando/bond-trader/pkg/output"
	"github.com/iwvelando/bond-trader/pkg/validation"
	"go.uber.org/zap"
)

// Options configures the API handler.
type Options struct {
	MaxUploadSize int64
	// MaxEstimate rejects requests whose estimated solver cost exceeds it.
	MaxEstimate int64
	Version     string
	Bond        trader.BondParams
	Algorithm   trader.Algorithm
}

// HandlerOptions derives handler options from the server configuration.
func (c *Config) HandlerOptions(version string) (Options, error) {
	alg, err := c.Solver.Parse()
	if err != nil {
		return Options{}, err
	}
	return Options{
		MaxUploadSize: c.UploadSizeBytes(),
		MaxEstimate:   c.MaxEstimate,
		Version:       version,
		Bond:          c.Bond.Params(),
		Algorithm:     alg,
	}, nil
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	maxEstimate   int64
	version       string
	bond          trader.BondParams
	algorithm     trader.Algorithm
}

// NewHandler constructs the HTTP handler that serves the solve API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if opts.MaxEstimate <= 0 {
		opts.MaxEstimate = constants.DefaultMaxEstimate
	}
	if opts.Bond == (trader.BondParams{}) {
		opts.Bond = trader.DefaultBondParams()
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: opts.MaxUploadSize,
		maxEstimate:   opts.MaxEstimate,
		version:       trimmedVersion,
		bond:          opts.Bond,
		algorithm:     opts.Algorithm,
	}

	mux := http.NewServeMux()

	// Solve a lot file upload
	mux.HandleFunc("/api/solve", h.handleSolve)

	// Solve a JSON-encoded instance
	mux.HandleFunc("/api/solve/json", h.handleSolveJSON)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type solveRequest struct {
	Instance   trader.Instance    `json:"instance"`
	Bond       *trader.BondParams `json:"bond,omitempty"`
	Algorithm  string             `json:"algorithm,omitempty"`
	CrossCheck bool               `json:"crossCheck,omitempty"`
}

type solveResponse struct {
	Algorithm  string       `json:"algorithm"`
	Profit     int64        `json:"profit"`
	Cost       int64        `json:"cost"`
	TotalFunds int64        `json:"totalFunds"`
	Lots       []output.Row `json:"lots"`
	Estimates  estimates    `json:"estimates"`
	Text       string       `json:"text"`
	CSV        string       `json:"csv"`
	Warnings   []string     `json:"warnings,omitempty"`
	Duration   string       `json:"duration"`
}

type estimates struct {
	Subset   int64 `json:"subset"`
	Knapsack int64 `json:"knapsack"`
}

type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSolve"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing lot file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	inst, err := lotfile.Parse(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse lot file: %v", err), op)
		return
	}

	req := solveRequest{
		Instance:   inst,
		Algorithm:  r.FormValue("algorithm"),
		CrossCheck: coerceBool(r.FormValue("crossCheck")),
	}
	bond, err := h.bondFromForm(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	req.Bond = &bond

	h.runSolve(r.Context(), w, req, start, op)
}

func (h *handler) handleSolveJSON(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSolveJSON"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	h.runSolve(r.Context(), w, req, start, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// bondFromForm overrides the configured bond with any numeric form fields.
func (h *handler) bondFromForm(r *http.Request) (trader.BondParams, error) {
	bond := h.bond
	fields := []struct {
		name   string
		target *int64
	}{
		{"redemptionDays", &bond.RedemptionDays},
		{"parValue", &bond.ParValue},
		{"paymentPerDay", &bond.PaymentPerDay},
	}
	for _, field := range fields {
		raw := strings.TrimSpace(r.FormValue(field.name))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return trader.BondParams{}, fmt.Errorf("invalid %s %q", field.name, raw)
		}
		*field.target = value
	}
	return bond, nil
}

func (h *handler) runSolve(ctx context.Context, w http.ResponseWriter, req solveRequest, start time.Time, op string) {
	res, err := h.solve(ctx, req)
	if err != nil {
		status := http.StatusBadRequest
		var se *statusError
		if errors.As(err, &se) {
			status = se.status
		}
		h.respondError(w, status, err.Error(), op)
		return
	}

	inst := req.Instance
	bond := h.bond
	if req.Bond != nil {
		bond = *req.Bond
	}

	var text bytes.Buffer
	if err := lotfile.Write(&text, inst, res); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render result: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := solveResponse{
		Algorithm:  res.Algorithm.String(),
		Profit:     res.Profit,
		Cost:       res.Cost,
		TotalFunds: inst.TotalFunds,
		Lots:       output.Rows(inst, bond, res),
		Estimates: estimates{
			Subset:   trader.EstimateCost(trader.SubsetEnumeration, inst),
			Knapsack: trader.EstimateCost(trader.KnapsackDP, inst),
		},
		Text:     text.String(),
		CSV:      output.CsvString(inst, bond, res),
		Warnings: validation.ScaleWarnings(res.Algorithm.String(), len(inst.Lots), inst.TotalFunds, req.CrossCheck),
		Duration: elapsed.String(),
	}

	h.logger.Info("solve computed",
		zap.String("op", op),
		zap.String("algorithm", response.Algorithm),
		zap.Int("lots", len(inst.Lots)),
		zap.Int64("profit", res.Profit),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) solve(ctx context.Context, req solveRequest) (trader.Result, error) {
	alg := h.algorithm
	if strings.TrimSpace(req.Algorithm) != "" {
		parsed, err := trader.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return trader.Result{}, err
		}
		alg = parsed
	}

	bond := h.bond
	if req.Bond != nil {
		bond = *req.Bond
	}

	inst := req.Instance
	estimate := trader.EstimateCost(alg, inst)
	if req.CrossCheck {
		estimate = max(trader.EstimateCost(trader.SubsetEnumeration, inst), trader.EstimateCost(trader.KnapsackDP, inst))
	}
	if estimate > h.maxEstimate {
		return trader.Result{}, &statusError{
			status: http.StatusUnprocessableEntity,
			err:    fmt.Errorf("estimated solver cost %d exceeds limit %d", estimate, h.maxEstimate),
		}
	}

	runner := trader.NewRunner(h.logger, trader.WithAlgorithm(alg), trader.WithCrossCheck(req.CrossCheck))
	res, err := runner.Run(ctx, inst, bond)
	if errors.Is(err, trader.ErrSolverMismatch) {
		return trader.Result{}, &statusError{status: http.StatusInternalServerError, err: err}
	}
	return res, err
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("solve request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	parsed, err := strconv.ParseBool(trimmed)
	return err == nil && parsed
}
