package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// Service orchestrates one generation attempt end-to-end: classification,
// prompt composition, model selection with fallback, extraction,
// sanitization, guardrail evaluation, sandboxed execution, and artifact
// discovery. One request is processed synchronously; the stages never
// overlap within a request.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Artifacts       ports.ArtifactRepository
	Runner          ports.ScriptRunner
	Security        ports.SecurityService
	HistoryStore    ports.HistoryRepository
	Cache           ports.CacheRepository
	Logger          ports.Logger
}

// Run processes a single natural-language generation request within the
// given session. Failures in model selection or execution are terminal for
// this attempt only; the session survives and the outcome is always
// recorded in the session history.
func (s *Service) Run(session *SessionContext, req domain.GenerationRequest) (domain.GenerationResponse, error) {
	if s.ConfigProvider == nil || s.ProviderFactory == nil || s.Artifacts == nil ||
		s.Runner == nil || s.Logger == nil {
		return domain.GenerationResponse{}, errors.New("pipeline.Service dependencies not satisfied")
	}
	if session == nil {
		session = NewSession()
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.GenerationResponse{}, fmt.Errorf("load config: %w", err)
	}

	// The category is determined exactly once and never revised.
	if req.Category == "" {
		req.Category = Classify(req.Prompt)
	}
	prompt := ComposePrompt(req.Prompt, req.Category)

	text, modelUsed, fromCache, err := s.obtainResponse(ctx, cfg, req, prompt)
	if err != nil {
		s.recordAttempt(session, req, modelUsed, "", false, -1)
		return domain.GenerationResponse{}, err
	}
	session.setActiveModel(modelUsed)

	code := Sanitize(ExtractCode(text), req.Category)

	resp := domain.GenerationResponse{
		ID:        req.ID,
		Category:  req.Category,
		ModelUsed: modelUsed,
		Code:      code,
		FromCache: fromCache,
	}

	sourcePath, err := s.Artifacts.WriteSource(req.Category, code)
	if err != nil {
		s.recordAttempt(session, req, modelUsed, code, false, -1)
		return resp, fmt.Errorf("write source: %w", err)
	}
	resp.SourcePath = sourcePath

	if req.SkipExecution {
		s.recordAttempt(session, req, modelUsed, code, false, -1)
		return resp, nil
	}

	if blocked, reasons := s.evaluateGuardrail(cfg, code); blocked {
		resp.Warnings = append(resp.Warnings, reasons...)
		s.recordAttempt(session, req, modelUsed, code, false, -1)
		return resp, fmt.Errorf("%w: %s", domain.ErrExecutionBlocked, strings.Join(reasons, "; "))
	} else if len(reasons) > 0 {
		resp.Warnings = append(resp.Warnings, reasons...)
	}

	timeout := domain.DefaultRunTimeout
	if cfg.Preferences.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Preferences.TimeoutSeconds) * time.Second
	}

	result, err := s.Runner.Run(ctx, sourcePath, timeout)
	if err != nil {
		// The source file stays on disk for inspection; execution is never
		// retried automatically.
		s.recordAttempt(session, req, modelUsed, code, false, -1)
		if errors.Is(err, domain.ErrRunTimeout) {
			return resp, err
		}
		return resp, fmt.Errorf("run script: %w", err)
	}
	resp.Execution = &result

	if outputs, listErr := s.Artifacts.List(); listErr == nil {
		resp.Outputs = outputs
	} else {
		s.Logger.Warn("list artifacts failed", map[string]interface{}{"error": listErr.Error()})
	}

	if req.Category == domain.CategoryCAD && result.Success && !hasSuffix(resp.Outputs, ".dxf") {
		resp.Warnings = append(resp.Warnings, "script exited 0 but produced no .dxf drawing")
	}

	s.recordAttempt(session, req, modelUsed, code, result.Success, result.ExitCode)
	return resp, nil
}

// obtainResponse resolves the model text for the prompt, consulting the
// cache first and falling through the ordered candidate list on failure.
func (s *Service) obtainResponse(ctx context.Context, cfg domain.Config, req domain.GenerationRequest, prompt string) (string, string, bool, error) {
	preferred := req.ModelOverride
	if preferred == "" {
		preferred = cfg.Preferences.DefaultModel
	}

	key := cacheKey(preferred, prompt)
	if s.Cache != nil && cfg.Cache.Enabled {
		if entry, ok, err := s.Cache.Get(key); err == nil && ok {
			return entry.Code, entry.Model, true, nil
		}
	}

	text, modelUsed, err := s.callWithFallback(ctx, cfg, preferred, prompt, req.Debug)
	if err != nil {
		return "", modelUsed, false, err
	}

	if s.Cache != nil && cfg.Cache.Enabled {
		if err := s.Cache.Set(domain.CacheEntry{
			Key:       key,
			Code:      text,
			Model:     modelUsed,
			Category:  req.Category,
			CreatedAt: time.Now(),
		}); err != nil {
			s.Logger.Warn("cache store failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return text, modelUsed, false, nil
}

// callWithFallback implements the two retry loops over the ordered attempt
// list. Construction retry: the first candidate whose handle instantiates
// wins; if every candidate's construction fails, the last error propagates.
// Call retry: when the call against the instantiated handle fails, the
// remaining candidates are tried in order (construction plus call each);
// only an exhausted list fails the operation, surfacing the original call
// error. Failures here are structural (wrong name, unavailable model), not
// transient load, so linear fallback with no backoff is the policy.
func (s *Service) callWithFallback(ctx context.Context, cfg domain.Config, preferred, prompt string, debug bool) (string, string, error) {
	candidates := cfg.CandidateModels(preferred)
	if len(candidates) == 0 {
		return "", "", fmt.Errorf("%w: model %q not configured and no fallbacks declared", domain.ErrNoProvider, preferred)
	}

	provider, idx, err := s.constructFirst(candidates)
	if err != nil {
		return "", "", err
	}

	text, callErr := s.generate(ctx, provider, prompt, debug)
	if callErr == nil {
		return text, provider.Model().Name, nil
	}

	for i, candidate := range candidates {
		if i == idx {
			continue
		}
		alt, err := s.ProviderFactory.ForModel(candidate)
		if err != nil {
			continue
		}
		if text, err := s.generate(ctx, alt, prompt, debug); err == nil {
			s.Logger.Info("fell back to model", map[string]interface{}{"model": candidate.Name})
			return text, candidate.Name, nil
		}
	}
	return "", provider.Model().Name, fmt.Errorf("%w: all model attempts failed: %s", domain.ErrNoProvider, callErr)
}

// constructFirst returns the first candidate whose handle instantiates,
// or the last construction error when every candidate fails.
func (s *Service) constructFirst(candidates []domain.ModelDefinition) (ports.Provider, int, error) {
	var lastErr error
	for i, candidate := range candidates {
		provider, err := s.ProviderFactory.ForModel(candidate)
		if err != nil {
			lastErr = fmt.Errorf("construct %s: %w", candidate.Name, err)
			continue
		}
		return provider, i, nil
	}
	return nil, -1, lastErr
}

func (s *Service) generate(ctx context.Context, provider ports.Provider, prompt string, debug bool) (string, error) {
	s.Logger.Info("calling model", map[string]interface{}{
		"provider": provider.Name(),
		"model":    provider.Model().ModelID,
	})
	resp, err := provider.Generate(ctx, ports.ProviderRequest{Prompt: prompt, Debug: debug})
	if err != nil {
		return "", err
	}
	// A response bearing no text is equivalent to an error for retry
	// purposes.
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("model %s returned an empty response", provider.Model().Name)
	}
	return resp.Text, nil
}

// evaluateGuardrail scans the sanitized script. It returns whether
// execution is blocked plus human-readable reasons for any findings.
func (s *Service) evaluateGuardrail(cfg domain.Config, code string) (bool, []string) {
	if s.Security == nil {
		return false, nil
	}
	risk, err := s.Security.Evaluate(code)
	if err != nil {
		s.Logger.Warn("guardrail evaluation failed", map[string]interface{}{"error": err.Error()})
		return false, nil
	}
	if risk.Action == domain.ActionBlock && cfg.Security.BlockOnCritical {
		return true, risk.Reasons
	}
	return false, risk.Reasons
}

func (s *Service) recordAttempt(session *SessionContext, req domain.GenerationRequest, model, code string, success bool, exitCode int) {
	entry := domain.HistoryEntry{
		ID:        req.ID,
		Timestamp: req.CreatedAt,
		Prompt:    req.Prompt,
		Category:  req.Category,
		Model:     model,
		Source:    code,
		Success:   success,
		ExitCode:  exitCode,
	}
	session.History().Record(entry)
	if s.HistoryStore != nil {
		if err := s.HistoryStore.Save(entry); err != nil {
			s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func cacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

func hasSuffix(outputs []domain.OutputFile, suffix string) bool {
	for _, out := range outputs {
		if strings.EqualFold(filepath.Ext(out.Name), suffix) {
			return true
		}
	}
	return false
}
