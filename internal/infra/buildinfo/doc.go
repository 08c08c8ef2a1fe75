// Package buildinfo reports the version of the csrftok binary.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/csrftok/internal/infra/buildinfo.Version=v1.0.0"
//
// and fall back to the VCS information the go tool embeds.
package buildinfo
