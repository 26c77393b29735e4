package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/openbloom/bloom/apperr"
	"github.com/openbloom/bloom/logger"
	"github.com/openbloom/bloom/middleware"
	"github.com/openbloom/bloom/models"
	"github.com/openbloom/bloom/realtime"
	"github.com/openbloom/bloom/service"
	"github.com/openbloom/bloom/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsRequest is one client command on the socket.
type wsRequest struct {
	Action   string `json:"action"`
	Stream   string `json:"stream"`
	Category string `json:"category,omitempty"`
	PostId   string `json:"postId,omitempty"`
	UserId   string `json:"userId,omitempty"`
}

type wsEvent struct {
	Stream string `json:"stream"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WsHandler bridges store subscriptions onto a websocket. Each stream name
// owns one listener slot, so resubscribing with new params tears the old
// listener down first.
type WsHandler struct {
	watcher *realtime.Watcher
	feeds   *service.FeedService
	follows *service.FollowService
}

func NewWsHandler(watcher *realtime.Watcher, feeds *service.FeedService, follows *service.FollowService) *WsHandler {
	return &WsHandler{watcher: watcher, feeds: feeds, follows: follows}
}

// wsConn serializes writes; snapshot callbacks fire from store goroutines.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(event wsEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(event); err != nil {
		logger.Warn("Websocket write failed", zap.Error(err))
	}
}

func (h *WsHandler) Serve(c *gin.Context) {
	ctx := c.Request.Context()
	userId := middleware.UserId(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	ws := &wsConn{conn: conn}

	slots := map[string]*realtime.ListenerSlot{}
	defer func() {
		for _, slot := range slots {
			slot.Detach()
		}
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req wsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			ws.send(wsEvent{Error: "malformed message"})
			continue
		}

		switch req.Action {
		case "subscribe":
			slot, ok := slots[req.Stream]
			if !ok {
				slot = &realtime.ListenerSlot{}
				slots[req.Stream] = slot
			}
			if err := h.subscribe(ctx, slot, ws, userId, req); err != nil {
				ws.send(wsEvent{Stream: req.Stream, Error: err.Error()})
			}
		case "unsubscribe":
			if slot, ok := slots[req.Stream]; ok {
				slot.Detach()
				delete(slots, req.Stream)
			}
		default:
			ws.send(wsEvent{Error: "unknown action"})
		}
	}
}

func (h *WsHandler) subscribe(ctx context.Context, slot *realtime.ListenerSlot, ws *wsConn, userId string, req wsRequest) error {
	onError := func(err error) {
		ws.send(wsEvent{Stream: req.Stream, Error: err.Error()})
	}

	return slot.Attach(func() (*store.Subscription, error) {
		switch req.Stream {
		case "feed":
			category := service.FeedCategory(req.Category)
			if category == "" {
				category = service.FeedLatest
			}
			q, err := h.feeds.Plan(category)
			if err != nil {
				return nil, err
			}
			q.Limit = h.feeds.PageSize()
			return h.watcher.WatchPosts(q, func(posts []models.PostModel) {
				ws.send(wsEvent{Stream: req.Stream, Data: posts})
			}, onError)
		case "comments":
			return h.watcher.WatchComments(req.PostId, func(comments []models.CommentModel) {
				ws.send(wsEvent{Stream: req.Stream, Data: comments})
			}, onError)
		case "reactions":
			return h.watcher.WatchReactions(req.PostId, func(counts map[models.ReactionType]int64) {
				ws.send(wsEvent{Stream: req.Stream, Data: counts})
			}, onError)
		case "notifications":
			return h.watcher.WatchNotifications(userId, func(list []models.NotificationModel) {
				ws.send(wsEvent{Stream: req.Stream, Data: list})
			}, onError)
		case "profile":
			watchId := req.UserId
			if watchId == "" {
				watchId = userId
			}
			return h.watcher.WatchProfile(watchId, func(user *models.UserModel) {
				ws.send(wsEvent{Stream: req.Stream, Data: user})
			}, onError)
		case "stats":
			return h.watcher.WatchStats(func(stats realtime.SiteStats) {
				ws.send(wsEvent{Stream: req.Stream, Data: stats})
			}, onError)
		case "newPosts":
			authorIds, err := h.follows.FollowingIds(ctx, userId)
			if err != nil {
				return nil, err
			}
			return h.watcher.WatchFollowedPosts(userId, authorIds, func(post models.PostModel) {
				ws.send(wsEvent{Stream: req.Stream, Data: post})
			}, onError)
		}
		return nil, apperr.Newf(apperr.KindInvalidInput, "unknown stream: %s", req.Stream)
	})
}
