package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/skillsim/internal/db"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/observer"
	"github.com/udisondev/skillsim/internal/sim"
)

const saveTimeout = 10 * time.Second

// ticker configures the tick loop. hub and snapshots are optional.
type ticker struct {
	interval         time.Duration
	snapshotInterval time.Duration
	hub              *observer.Hub
	snapshots        chan<- map[string][]status.Record
}

// runTicks owns the simulation: nothing else may touch it while it runs.
// On exit it hands a final snapshot to the saver and closes the channel.
func runTicks(ctx context.Context, simulation *sim.Simulation, t ticker) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	lastSnapshot := time.Now()
	for {
		select {
		case <-ctx.Done():
			if t.snapshots != nil {
				t.snapshots <- simulation.ExportStatuses()
				close(t.snapshots)
			}
			slog.Info("tick loop stopped", "ticks", simulation.TickCount())
			return nil

		case now := <-tk.C:
			frame := simulation.Step()
			if t.hub != nil {
				if err := t.hub.Publish(frame); err != nil {
					slog.Warn("publishing frame", "tick", frame.Tick, "err", err)
				}
			}

			if t.snapshots == nil || t.snapshotInterval <= 0 || now.Sub(lastSnapshot) < t.snapshotInterval {
				continue
			}
			// Skip this snapshot if the saver is still busy with the last one.
			select {
			case t.snapshots <- simulation.ExportStatuses():
				lastSnapshot = now
			default:
			}
		}
	}
}

// saveSnapshots persists snapshots until the channel is closed. Failures are
// logged; the next snapshot replaces the whole table anyway.
func saveSnapshots(ctx context.Context, repo *db.StatusRepository, snapshots <-chan map[string][]status.Record) {
	for snap := range snapshots {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		if err := repo.SaveAll(saveCtx, snap); err != nil {
			slog.Error("saving status snapshot", "err", err)
		} else {
			slog.Debug("status snapshot saved", "characters", len(snap))
		}
		cancel()
	}
}
