package repository

import (
	"context"
	"fmt"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
)

// DiscordNotifier posts alert payloads to a Discord webhook as a single
// embed. One attempt per cycle; the next cycle is the retry.
type DiscordNotifier struct {
	webhookURL string
	client     *xhttp.Client
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// NewDiscordNotifier creates a webhook notifier.
func NewDiscordNotifier(webhookURL string, client *xhttp.Client) *DiscordNotifier {
	return &DiscordNotifier{webhookURL: webhookURL, client: client}
}

func (n *DiscordNotifier) Name() string { return "discord" }

// Deliver posts the payload. Discord answers 204 on success; 200 is also
// accepted for webhooks created with wait=true.
func (n *DiscordNotifier) Deliver(ctx context.Context, p *models.AlertPayload) error {
	fields := make([]discordEmbedField, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, discordEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	msg := discordMessage{
		Embeds: []discordEmbed{{
			Title:       p.Title,
			Description: p.Description,
			Color:       p.Color,
			Fields:      fields,
			Footer:      &discordFooter{Text: p.Footer},
		}},
	}

	status, body, err := n.client.PostJSON(ctx, n.webhookURL, msg)
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	if status != 200 && status != 204 {
		return &models.DeliveryError{Channel: n.Name(), Status: status, Body: body}
	}
	return nil
}
