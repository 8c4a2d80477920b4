package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	"github.com/groundops/crew-portal/internal/service"
	"github.com/groundops/crew-portal/internal/session"
	apperrors "github.com/groundops/crew-portal/pkg/util"
)

const (
	streamBuffer      = 16
	heartbeatInterval = 25 * time.Second
)

// StreamHandler serves the SSE change stream. Each connection owns a session
// resolver: it resumes the caller's session from the token, re-resolves the
// profile on auth transitions, and tears everything down on disconnect.
type StreamHandler struct {
	provider  identity.Provider
	agents    repository.AgentRepository
	feed      realtime.Feed
	dashboard *service.DashboardService
	logger    *zap.Logger
}

// NewStreamHandler constructs handler.
func NewStreamHandler(provider identity.Provider, agents repository.AgentRepository, feed realtime.Feed, dashboard *service.DashboardService, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{provider: provider, agents: agents, feed: feed, dashboard: dashboard, logger: logger}
}

type streamEvent struct {
	Name    string
	Payload any
}

// Stream handles GET /realtime/stream. EventSource cannot set headers, so the
// token is also accepted as ?token=.
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		var err error
		if token, err = identity.BearerToken(c); err != nil {
			return err
		}
	}

	resolver := session.NewResolver(h.provider, h.agents, h.logger)
	resolver.Initialize(c.UserContext(), token)
	snap := resolver.Snapshot()
	if !snap.Authenticated() {
		return apperrors.NewUnauthorized("sesión inválida o expirada")
	}
	principalID := snap.Principal.ID

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		queue := make(chan streamEvent, streamBuffer)
		push := func(name string, payload any) {
			select {
			case queue <- streamEvent{Name: name, Payload: payload}:
			default:
				// Slow consumer; the next heartbeat keeps the stream alive.
			}
		}

		stopObserve := resolver.ObserveChanges(ctx, func(snap session.Snapshot) {
			push("auth", fiber.Map{"state": string(snap.State)})
			if !snap.Authenticated() {
				cancel()
			}
		})
		defer stopObserve()

		// Personal inbox: only rows addressed to this principal.
		inboxSub, err := h.feed.Subscribe(ctx, "notificaciones",
			realtime.Filter{Column: "destinatario_id", Equals: principalID},
			func(ev realtime.ChangeEvent) { push("notificacion", ev) })
		if err != nil {
			h.logger.Warn("notification stream subscribe failed", zap.Error(err))
			return
		}
		defer inboxSub.Unsubscribe()

		dashSubs, err := h.dashboard.WatchChanges(ctx, func() {
			push("resumen", fiber.Map{"refresh": true})
		})
		if err != nil {
			h.logger.Warn("dashboard stream subscribe failed", zap.Error(err))
			return
		}
		defer func() {
			for _, sub := range dashSubs {
				sub.Unsubscribe()
			}
		}()

		if err := writeSSE(w, "auth", fiber.Map{"state": string(snap.State)}); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case ev := <-queue:
				if err := writeSSE(w, ev.Name, ev.Payload); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSE(w *bufio.Writer, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return w.Flush()
}
