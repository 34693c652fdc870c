package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/tundex/airtime-bot/internal/origin"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// WebhookHandler accepts a Telegram update and enqueues it for the
// dispatcher. Requests from outside Telegram's network ranges are answered
// 200 but never forwarded, so probing the endpoint reveals nothing.
func (s *Server) WebhookHandler(w http.ResponseWriter, r *http.Request) (
	interface{}, error) {

	clientIP := origin.ClientIP(r.Header)
	if !origin.IsTelegram(clientIP) {
		s.log.Warn("webhook request from outside Telegram ranges", "ip", clientIP)
		return "ok", nil
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		s.log.Error("Unable to read request body", "error", err)
		return nil, err
	}
	defer r.Body.Close()

	var update tgbotapi.Update

	err = json.Unmarshal(bodyBytes, &update)
	if err != nil {
		s.log.Error("update unmarshalling error", "error", err)
		return nil, &APIError{BadUpdateError}
	}

	s.log.Debug("Accepted update", "update_id", update.UpdateID)

	err = s.publisher.Publish(bodyBytes)
	if err != nil {
		s.log.Error(
			"couldn't enqueue update",
			"update_id", update.UpdateID,
			"error", err,
		)

		return nil, &APIError{EnqueueingError}
	}

	return "ok", nil
}
