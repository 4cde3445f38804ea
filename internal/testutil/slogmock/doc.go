package slogmock

//go:generate go tool mockgen -destination=handler.go -package=slogmock log/slog Handler
