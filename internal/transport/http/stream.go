package http

import (
	"context"
	"log/slog"

	"xr_archive/internal/lib/logger/sl"
	archive "xr_archive/internal/services/archive_service"

	"github.com/labstack/echo/v4"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Stream godoc
// @Summary Живой поток состояния архива
// @Description WebSocket: первым сообщением приходит текущее состояние, затем новое состояние после каждого изменения
// @Tags records
// @Success 101
// @Router /api/v1/stream [get]
func (r *Routers) Stream(c echo.Context) error {
	const op = "http.routers.Stream"

	log := r.log.With(
		slog.String("op", op),
		slog.String("remote_ip", c.RealIP()),
	)

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Warn("failed to accept websocket", sl.Err(err))
		return nil
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(c.Request().Context())

	// Медленный клиент получает только последнее состояние
	updates := make(chan archive.State, 1)
	unsubscribe := r.ArchiveService.Watch(func(st archive.State) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- st:
		default:
		}
	})
	defer unsubscribe()

	log.Debug("stream opened")

	if err := writeState(ctx, conn, r.ArchiveService.State()); err != nil {
		log.Debug("stream closed", sl.Err(err))
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			log.Debug("stream closed")
			return nil
		case st := <-updates:
			if err := writeState(ctx, conn, st); err != nil {
				log.Debug("stream closed", sl.Err(err))
				return nil
			}
		}
	}
}

func writeState(ctx context.Context, conn *websocket.Conn, st archive.State) error {
	return wsjson.Write(ctx, conn, st)
}
