// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package querent assembles the query pipeline: normalization, intent
// resolution, document extraction, feature weighting, and vector retrieval
// over credit-client profiles.
package querent

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/querent/ai"
	"github.com/poiesic/querent/ai/cached"
	"github.com/poiesic/querent/ai/openai"
	"github.com/poiesic/querent/config"
	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/extract"
	"github.com/poiesic/querent/intent"
	"github.com/poiesic/querent/ocr"
	"github.com/poiesic/querent/ocr/easyocr"
	"github.com/poiesic/querent/ocr/tesseract"
	"github.com/poiesic/querent/retrieval"
	"github.com/poiesic/querent/retrieval/qdrant"
	"github.com/poiesic/querent/router"
	"github.com/poiesic/querent/storage/badger"
)

// Services wires every pipeline stage together for one configuration.
type Services struct {
	cfg       *config.AppConfig
	backend   *badger.Backend
	provider  ai.Provider
	gateway   retrieval.Gateway
	extractor *extract.Extractor
	router    *router.Router
	logger    *slog.Logger
}

// Option configures service construction.
type Option func(*serviceOptions)

type serviceOptions struct {
	provider ai.Provider
	gateway  retrieval.Gateway
}

// WithProvider replaces the OpenAI-backed AI provider, mainly for tests.
func WithProvider(provider ai.Provider) Option {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithGateway replaces the Qdrant-backed retrieval gateway, mainly for tests.
func WithGateway(gateway retrieval.Gateway) Option {
	return func(o *serviceOptions) {
		o.gateway = gateway
	}
}

// New builds the pipeline described by cfg.
//
// Remote collaborators are not contacted here; an unreachable language
// model degrades per query (intent falls back to raw search) and an
// unreachable vector database errors per search. A cache that fails to
// open is skipped, embeddings just stop being reused.
func New(cfg *config.AppConfig, opts ...Option) (*Services, error) {
	if cfg == nil {
		loaded, _, err := config.LoadDefault()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default()
	s := &Services{
		cfg:    cfg,
		logger: logger,
	}

	s.provider = options.provider
	if s.provider == nil {
		aiCfg := ai.NewConfig(
			ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
			ai.WithParserHost(cfg.AI.ParserHost),
			ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
			ai.WithParserModel(cfg.AI.ParserModel),
			ai.WithToken(cfg.AI.Token()),
		)
		if err := aiCfg.Validate(); err != nil {
			return nil, err
		}
		provider, err := openai.NewProvider(aiCfg)
		if err != nil {
			return nil, err
		}
		s.provider = provider
	}

	embedder := s.provider.Embedder()
	if cfg.Cache.Enabled {
		backend, err := badger.OpenBackend(cfg.Cache.Path, false)
		if err != nil {
			logger.Warn("embedding cache unavailable, continuing without it",
				"path", cfg.Cache.Path,
				"error", err)
		} else {
			var cacheOpts []badger.CacheOption
			if cfg.Cache.TTLHours > 0 {
				cacheOpts = append(cacheOpts,
					badger.WithTTL(time.Duration(cfg.Cache.TTLHours)*time.Hour))
			}
			cache, err := badger.NewEmbeddingCache(backend, cacheOpts...)
			if err != nil {
				backend.Close()
				return nil, err
			}
			wrapped, err := cached.NewEmbedder(embedder, cache, cfg.AI.EmbeddingModel)
			if err != nil {
				backend.Close()
				return nil, err
			}
			s.backend = backend
			embedder = wrapped
		}
	}

	s.gateway = options.gateway
	if s.gateway == nil {
		gateway, err := qdrant.NewGateway(qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey(),
			Collection: cfg.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		}, embedder)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.gateway = gateway
	}

	recognizerOpts := []ocr.RecognizerOption{
		ocr.WithConfidenceThreshold(cfg.OCR.ConfidenceThreshold),
	}
	if cfg.OCR.SecondaryURL != "" {
		recognizerOpts = append(recognizerOpts,
			ocr.WithSecondary(easyocr.NewEngine(cfg.OCR.SecondaryURL)))
	}
	recognizer, err := ocr.NewRecognizer(tesseract.NewEngine(cfg.OCR.Languages...), recognizerOpts...)
	if err != nil {
		s.Close()
		return nil, err
	}

	extractor, err := extract.NewExtractor(recognizer)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.extractor = extractor

	resolver := intent.NewResolver(s.provider.IntentParser())
	rtr, err := router.NewRouter(s.gateway, extractor, router.WithResolver(resolver))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.router = rtr

	return s, nil
}

// Query routes a raw input string through the pipeline. Inputs naming an
// existing PDF or image file are read and processed as documents; anything
// else searches as text.
func (s *Services) Query(ctx context.Context, input string, opts router.RouteOptions) ([]core.RetrievalHit, error) {
	kind := router.DetectKind(input)
	if kind == core.KindText {
		return s.router.Route(ctx, core.TextQuery{Raw: input}, opts)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	return s.router.Route(ctx, core.DocumentQuery{
		Name: filepath.Base(input),
		Data: data,
		Kind: kind,
	}, opts)
}

// Router returns the query router.
func (s *Services) Router() *router.Router {
	return s.router
}

// Gateway returns the retrieval gateway.
func (s *Services) Gateway() retrieval.Gateway {
	return s.gateway
}

// Config returns the configuration the services were built with.
func (s *Services) Config() *config.AppConfig {
	return s.cfg
}

// Close releases every owned resource.
func (s *Services) Close() error {
	if s.extractor != nil {
		s.extractor.Release()
	}
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing embedding cache", "err", err)
			return err
		}
	}
	return nil
}
