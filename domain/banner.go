package domain

import "time"

// BannerKind distinguishes the two banner styles.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Auto-dismiss durations for the two banner kinds.
const (
	SuccessBannerTTL = 3 * time.Second
	ErrorBannerTTL   = 5 * time.Second
)

// Banner is a transient dismissible message rendered at the top of a page.
type Banner struct {
	Kind    BannerKind
	Message string
	ShowFor time.Duration
}

// SuccessBanner builds a success banner with the standard dismiss delay.
func SuccessBanner(msg string) Banner {
	return Banner{Kind: BannerSuccess, Message: msg, ShowFor: SuccessBannerTTL}
}

// ErrorBanner builds an error banner with the standard dismiss delay.
func ErrorBanner(msg string) Banner {
	return Banner{Kind: BannerError, Message: msg, ShowFor: ErrorBannerTTL}
}
