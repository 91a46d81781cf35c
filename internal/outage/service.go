// Package outage orchestrates one reply: both upstream sources fetched
// concurrently under their retry budgets, reconciled into a schedule, then
// formatted as text and (best effort) a table image.
package outage

import (
	"context"
	"fmt"
	"log"
	"time"

	"outage-bot/internal/dates"
	"outage-bot/internal/dtek"
	"outage-bot/internal/fetch"
	"outage-bot/internal/message"
	"outage-bot/internal/schedule"
	"outage-bot/internal/svitlobot"
	"outage-bot/internal/tableimage"
)

// Retry budgets. The schedule source is mandatory and gets the high
// ceiling; the crowd feed degrades gracefully and is not worth waiting on.
const (
	dtekAttempts      = 10
	svitlobotAttempts = 3
)

// Reply is the finished payload for the transport layer.
type Reply struct {
	Text  string // HTML
	Image []byte // nil when no image could be produced
}

// Service wires the clients, renderer, and per-deployment identifiers.
type Service struct {
	dtekClient      *dtek.Client
	svitlobotClient *svitlobot.Client
	renderer        *tableimage.Renderer
	houseID         string
	street          string
	powerCities     []string
	powerRegion     string
}

// NewService creates the orchestrator.
func NewService(dtekClient *dtek.Client, svitlobotClient *svitlobot.Client, renderer *tableimage.Renderer, houseID, street string, powerCities []string, powerRegion string) *Service {
	return &Service{
		dtekClient:      dtekClient,
		svitlobotClient: svitlobotClient,
		renderer:        renderer,
		houseID:         houseID,
		street:          street,
		powerCities:     powerCities,
		powerRegion:     powerRegion,
	}
}

// Produce builds one reply. A DTEK failure after all retries is fatal; a
// svitlobot failure only drops the regional stats line.
func (s *Service) Produce(ctx context.Context) (*Reply, error) {
	now := time.Now()
	currentDate := dates.CurrentStamp(now)

	type dtekResult struct {
		resp *dtek.Response
		err  error
	}
	dtekCh := make(chan dtekResult, 1)
	rowsCh := make(chan []svitlobot.PowerRow, 1)

	go func() {
		resp, err := fetch.WithRetry(ctx, "dtek", dtekAttempts, func() (*dtek.Response, error) {
			return s.dtekClient.Fetch(ctx, now)
		})
		dtekCh <- dtekResult{resp: resp, err: err}
	}()

	go func() {
		rows, err := fetch.WithRetry(ctx, "svitlobot", svitlobotAttempts, func() ([]svitlobot.PowerRow, error) {
			return s.svitlobotClient.Fetch(ctx)
		})
		if err != nil {
			log.Printf("[outage] svitlobot unavailable, continuing without stats: %v", err)
			rows = nil
		}
		rowsCh <- rows
	}()

	dtekRes := <-dtekCh
	rows := <-rowsCh

	if dtekRes.err != nil {
		return nil, fmt.Errorf("fetch dtek data: %w", dtekRes.err)
	}
	resp := dtekRes.resp

	house := dtek.HouseFromResponse(resp, s.houseID)
	schedData := schedule.Extract(resp, house, s.houseID)
	if schedData == nil {
		log.Printf("[outage] schedule unresolvable, replying with outage status only")
	}

	stats := svitlobot.RegionalStats(s.powerCities, s.powerRegion, rows)

	updateStamp := resp.Fact.Update
	if updateStamp == "" {
		updateStamp = currentDate
	}

	text := message.Format(message.Input{
		HouseGroup:     dtek.HouseGroup(house, &resp.Preset),
		Street:         s.street,
		House:          house,
		CurrentDate:    currentDate,
		ScheduleBlocks: schedule.Blocks(schedData),
		PowerStats:     stats,
		UpdateStamp:    updateStamp,
	})

	return &Reply{
		Text:  text,
		Image: s.renderer.Render(ctx, schedData),
	}, nil
}
