package server

//go:generate swag init -g internal/server/swagger.go -o internal/server/docs

// @title Inspectra API
// @version 0.1
// @description Scan-session dashboard API: start a site-quality analysis, follow it live and browse past scans.
// @contact.name Inspectra Maintainers
// @contact.url https://github.com/raysh454/inspectra
// @BasePath /
