// Package brief generates a short narrative summary of a company profile
// using the Anthropic API. The feature is optional: without an API key the
// caller simply does not construct a Generator.
package brief

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/profile"
)

const systemPrompt = "You are a trade analyst writing for a sales team. " +
	"Summarize the company's import activity, key suppliers, and buying patterns " +
	"in three short paragraphs of plain prose. Use only the data provided. " +
	"Do not invent figures."

// Messenger is the subset of the Anthropic API the generator needs.
type Messenger interface {
	CreateMessage(ctx context.Context, model string, maxTokens int64, system, user string) (string, error)
}

// Generator turns an aggregated profile into a narrative brief.
type Generator struct {
	client    Messenger
	model     string
	maxTokens int64
}

// New builds a Generator on top of any Messenger.
func New(client Messenger, model string, maxTokens int64) *Generator {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Generator{client: client, model: model, maxTokens: maxTokens}
}

// Generate produces the brief text for the given profile.
func (g *Generator) Generate(ctx context.Context, p *profile.Profile) (string, error) {
	if p == nil {
		return "", eris.New("brief: nil profile")
	}

	text, err := g.client.CreateMessage(ctx, g.model, g.maxTokens, systemPrompt, BuildPrompt(p))
	if err != nil {
		return "", eris.Wrap(err, "brief: generate")
	}

	zap.L().Info("brief generated",
		zap.String("company_id", p.CompanyID),
		zap.String("model", g.model),
		zap.Int("length", len(text)),
	)
	return text, nil
}

// BuildPrompt renders the profile as a compact plain-text dossier for the
// model. Nil fields are omitted rather than rendered as "unknown".
func BuildPrompt(p *profile.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company ID: %s\n", p.CompanyID)
	if p.BasicInfo != nil {
		writeField(&b, "Name", p.BasicInfo.Name)
		writeField(&b, "Country", p.BasicInfo.Country)
		writeField(&b, "Industry", p.BasicInfo.Industry)
	}
	if p.Overview != nil {
		writeField(&b, "Overview", p.Overview.Overview)
		if p.Overview.PurchaseAmountUSD != nil {
			fmt.Fprintf(&b, "Annual purchase amount (USD): %.0f\n", *p.Overview.PurchaseAmountUSD)
		}
	}

	fmt.Fprintf(&b, "\nPurchase records: %d\n", p.Stats.Records)
	fmt.Fprintf(&b, "Distinct suppliers: %d\n", p.Stats.Suppliers)
	fmt.Fprintf(&b, "Origin countries: %d\n", p.Stats.Origins)
	fmt.Fprintf(&b, "Products: %d\n", p.Stats.Products)

	if len(p.ExporterFlows) > 0 {
		b.WriteString("\nTop suppliers by trade volume:\n")
		for _, n := range p.ExporterFlows {
			fmt.Fprintf(&b, "- %s: %.2f\n", n.Name, n.Value)
		}
	}
	if len(p.ImporterFlows) > 0 {
		b.WriteString("\nOther buyers in the same supply chains:\n")
		for _, n := range p.ImporterFlows {
			fmt.Fprintf(&b, "- %s: %.2f\n", n.Name, n.Value)
		}
	}

	if len(p.Purchases) > 0 {
		b.WriteString("\nRecent purchases:\n")
		limit := len(p.Purchases)
		if limit > 20 {
			limit = 20
		}
		for _, l := range p.Purchases[:limit] {
			fmt.Fprintf(&b, "- %s | %s | HS %s | %s\n",
				orDash(l.Date), orDash(l.Exporter), orDash(l.HSCode), orDash(l.Product))
		}
	}

	return b.String()
}

func writeField(b *strings.Builder, label string, v *string) {
	if v != nil && *v != "" {
		fmt.Fprintf(b, "%s: %s\n", label, *v)
	}
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// sdkMessenger implements Messenger with the official SDK.
type sdkMessenger struct {
	client sdk.Client
}

// NewMessenger creates a Messenger backed by the Anthropic SDK.
func NewMessenger(apiKey string) Messenger {
	return &sdkMessenger{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
	}
}

func (m *sdkMessenger) CreateMessage(ctx context.Context, model string, maxTokens int64, system, user string) (string, error) {
	msg, err := m.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
