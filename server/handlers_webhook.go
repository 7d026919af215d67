package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/granazap/granazap/server/engine"
)

// WebhookRequest is the inbound message payload: the sender id, their
// display name when the transport supplies one, and the raw text. Webhook
// signature validation belongs to the transport in front of this server.
type WebhookRequest struct {
	From        string `json:"from"`
	ProfileName string `json:"profile_name,omitempty"`
	Text        string `json:"text"`
}

// WebhookResponse carries the reply text for the transport to send back.
type WebhookResponse struct {
	Reply         string `json:"reply"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// HandleWebhook processes one chat message end to end. Each request is
// handled synchronously; a transport must deliver a given sender's
// messages in order so that a category correction applies to that sender's
// immediately preceding transaction.
func (app *Application) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.From == "" || req.Text == "" {
		http.Error(w, "from and text are required", http.StatusBadRequest)
		return
	}

	log := app.Log.With().
		Str("message_id", uuid.NewString()).
		Str("sender", req.From).
		Logger()

	res, err := app.Engine.Process(r.Context(), engine.RawMessage{
		Text:        req.Text,
		SenderID:    req.From,
		ProfileName: req.ProfileName,
	})
	if err != nil {
		log.Error().Err(err).Msg("process message")
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	resp := WebhookResponse{Reply: res.Reply}
	if res.Transaction != nil {
		resp.TransactionID = res.Transaction.ID
		log.Info().
			Str("transaction_id", res.Transaction.ID).
			Str("category", res.Transaction.Category).
			Str("amount", res.Transaction.Amount.String()).
			Msg("transaction saved")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth is a liveness probe.
func (app *Application) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
