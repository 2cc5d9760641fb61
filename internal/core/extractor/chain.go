package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Chain tries each prober in order and returns the first success. Probers
// that do not handle the URL are left out of the joined error.
type Chain []Prober

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Name()
	}
	return strings.Join(names, ",")
}

func (c Chain) Probe(ctx context.Context, url string) (*Info, error) {
	if len(c) == 0 {
		return nil, errors.New("no prober configured")
	}

	var errs, skipped []error
	for _, p := range c {
		info, err := p.Probe(ctx, url)
		if err == nil {
			return info, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("probe %s: %w", url, ErrCancelled)
		}
		log.Printf("[probe] %s failed for %s: %v", p.Name(), url, err)
		if errors.Is(err, ErrUnsupportedURL) {
			skipped = append(skipped, err)
			continue
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.Join(skipped...)
	}
	return nil, errors.Join(errs...)
}

// WithFallback pairs an engine with extra probers consulted when the engine's
// own probe fails. Downloads always use the engine.
type WithFallback struct {
	Engine
	Fallbacks []Prober
}

func (w *WithFallback) Probe(ctx context.Context, url string) (*Info, error) {
	chain := append(Chain{w.Engine}, w.Fallbacks...)
	return chain.Probe(ctx, url)
}

// Default returns the yt-dlp engine with the native prober as fallback.
func Default() Engine {
	return &WithFallback{
		Engine:    NewYtdlp(),
		Fallbacks: []Prober{NewNative()},
	}
}
