package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	drepo "github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/repository"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/util"
)

// absentValue renders instead of a number when the source lacks a field, so
// a missing book never reads as zero liquidity.
const absentValue = "N/A"

// wideSpreadCents is where the spread stops reading as algo-controlled and
// starts reading as a forming vacuum.
const wideSpreadCents = 5.0

// Composer renders a classified observation into a channel-agnostic alert
// payload. Output is fully determined by its inputs and the injected clock.
type Composer struct {
	symbol       string
	set          models.ThresholdSet
	volumeTarget int64
	footerTag    string
	loc          *time.Location
	clock        drepo.Clock
}

// NewComposer creates an alert composer.
func NewComposer(symbol string, set models.ThresholdSet, volumeTarget int64, footerTag string, loc *time.Location, clock drepo.Clock) *Composer {
	return &Composer{
		symbol:       symbol,
		set:          set,
		volumeTarget: volumeTarget,
		footerTag:    footerTag,
		loc:          loc,
		clock:        clock,
	}
}

// VolumeTargetPct reports session volume as a percentage of the target.
func (c *Composer) VolumeTargetPct(volume int64) float64 {
	return float64(volume) / float64(c.volumeTarget) * 100
}

// Compose builds the alert payload for one observation.
func (c *Composer) Compose(obs *models.Observation, status models.Threshold, pressure string) *models.AlertPayload {
	now := c.clock.Now()
	volPct := c.VolumeTargetPct(obs.Volume)

	return &models.AlertPayload{
		Title:       fmt.Sprintf("%s LIVE MONITOR: %s", c.symbol, status.Label),
		Description: c.description(obs, pressure, volPct),
		Color:       status.Color,
		Fields: []models.AlertField{
			{Name: "🎯 Key Levels Watch", Value: c.keyLevels(obs.Price)},
			{Name: "🌊 Liquidity Vacuum Model", Value: c.liquidity(obs, volPct)},
			{Name: "⚡ Tape Velocity", Value: c.velocity(obs)},
		},
		Footer:      fmt.Sprintf("%s | %s | %s", c.footerTag, obs.Source, now.In(c.loc).Format("15:04:05 MST")),
		GeneratedAt: now,
	}
}

func (c *Composer) description(obs *models.Observation, pressure string, volPct float64) string {
	imbal := absentValue
	if obs.Book != nil {
		imbal = fmt.Sprintf("%.2f", obs.Book.Imbalance)
	}
	return fmt.Sprintf(
		"**Price:** $%.2f (%.2f%%)\n**Volume:** %s (%.1f%%)\n**Order Book:** %s (Imbal: %s)",
		obs.Price, obs.ChangePct, util.Comma(obs.Volume), volPct, pressure, imbal,
	)
}

// keyLevels lists the pain chain top-down with a breached/held/at-risk
// marker per level. Markers use >= on purpose: the watchlist flags a level
// as reached at the exact print, while status classification stays strict.
func (c *Composer) keyLevels(price float64) string {
	lines := make([]string, 0, len(c.set.Levels)+1)
	for i := len(c.set.Levels) - 1; i >= 0; i-- {
		l := c.set.Levels[i]
		marker := "Wait..."
		if price >= l.Level {
			marker = "✅ BREACHED"
		}
		lines = append(lines, fmt.Sprintf("• $%.2f (%s): %s", l.Level, l.Name, marker))
	}

	floorMarker := "⚠️ AT RISK"
	if price >= c.set.Floor.Level {
		floorMarker = "✅ HELD"
	}
	lines = append(lines, fmt.Sprintf("• $%.2f (%s): %s", c.set.Floor.Level, c.set.Floor.Name, floorMarker))
	return strings.Join(lines, "\n")
}

func (c *Composer) liquidity(obs *models.Observation, volPct float64) string {
	spread := absentValue
	bidStack := absentValue
	askWall := absentValue
	if obs.Book != nil {
		tag := "✅ (Tight - Algo Controlled)"
		if obs.Book.Spread > wideSpreadCents {
			tag = "⚠️ (WIDENING - Vacuum Forming)"
		}
		spread = fmt.Sprintf("%.1f¢ %s", obs.Book.Spread, tag)
		bidStack = fmt.Sprintf("%s shares", util.Comma(obs.Book.BidSize))
		askWall = fmt.Sprintf("%s shares", util.Comma(obs.Book.AskSize))
	}
	return fmt.Sprintf(
		"**Spread Width:** %s\n**Bid Stack:** %s\n**Ask Wall:** %s\n**Filled:** %.1f%% of %s Target",
		spread, bidStack, askWall, volPct, util.Comma(c.volumeTarget),
	)
}

func (c *Composer) velocity(obs *models.Observation) string {
	if obs.Velocity == 0 {
		return "0 shares/min (outside session)"
	}
	v := fmt.Sprintf("%s shares/min", util.Comma(int64(obs.Velocity)))
	if obs.Delayed {
		v += " (delayed feed, low confidence)"
	}
	return v
}
