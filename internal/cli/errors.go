package cli

import (
	"github.com/iambhvsh/ytdl/internal/core/extractor"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
)

// friendlyError turns an engine failure into a message for the user. Unknown
// failures keep their original text.
func friendlyError(t *i18n.Translations, err error) string {
	if err == nil {
		return ""
	}
	switch extractor.Classify(err) {
	case extractor.ReasonCancelled:
		return t.Session.Canceled
	case extractor.ReasonPrivate:
		return t.Errors.PrivateVideo
	case extractor.ReasonUnavailable:
		return t.Errors.Unavailable
	case extractor.ReasonFormat:
		return t.Errors.FormatNotFound
	case extractor.ReasonSignIn:
		return t.Errors.SignInRequired
	case extractor.ReasonCopyright:
		return t.Errors.Copyright
	case extractor.ReasonRateLimited:
		return t.Errors.RateLimited
	case extractor.ReasonNetwork:
		return t.Errors.NetworkError
	}
	return err.Error()
}
