package handler

import (
	"dmchat/internal/app/chat"
	"dmchat/internal/configs"
)

// AppDeps bundles what the HTTP handlers need.
type AppDeps struct {
	Hub    *chat.Hub
	Config *configs.AppConfig
}
