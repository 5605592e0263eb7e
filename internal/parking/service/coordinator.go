package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"parkd/internal/parking/broadcast"
	parkingerrors "parkd/internal/parking/errors"
	"parkd/internal/parking/finder"
	"parkd/internal/parking/graph"
	"parkd/internal/parking/pricing"
	"parkd/internal/parking/queue"
	"parkd/internal/parking/registry"
	"parkd/internal/parking/repository"
	"parkd/internal/parking/validator"
	"parkd/pkg/config"
	apperrors "parkd/pkg/errors"
	"parkd/pkg/model"
	"parkd/pkg/sanitizer"
)

// ParkingService coordinates admission and release of vehicles over a
// scarce set of slots.
type ParkingService interface {
	// Load rebuilds the in-memory registry and stats cache from the
	// store. Must be called once before serving requests.
	Load(ctx context.Context) error
	Admit(ctx context.Context, plate string, g *graph.Graph) (AdmissionResult, error)
	Release(ctx context.Context, plate string, g *graph.Graph) (ReleaseResult, error)
	Status(ctx context.Context, plate string) (*VehicleStatus, error)
	Snapshot() model.StateView
	Subscribe(sub broadcast.Subscriber) string
	Unsubscribe(handle string)
}

// coordinator owns the slot registry, wait queue and stats cache. All
// slot-affecting work runs under mu, serializing admissions and
// releases in lock-acquisition order. Broadcast delivery happens after
// mu is released so slow subscribers never extend the critical
// section.
type coordinator struct {
	mu sync.Mutex

	cfg         *config.Config
	slots       repository.SlotRepository
	occupancy   repository.OccupancyRepository
	stats       repository.StatsRepository
	validator   *validator.RequestValidator
	registry    *registry.Registry
	queue       *queue.WaitQueue
	pricer      *pricing.Calculator
	broadcaster *broadcast.Broadcaster

	statsCache model.Stats

	now func() time.Time
}

func NewParkingService(
	slots repository.SlotRepository,
	occupancy repository.OccupancyRepository,
	stats repository.StatsRepository,
	requestValidator *validator.RequestValidator,
	broadcaster *broadcast.Broadcaster,
	cfg *config.Config,
) ParkingService {
	return &coordinator{
		cfg:         cfg,
		slots:       slots,
		occupancy:   occupancy,
		stats:       stats,
		validator:   requestValidator,
		registry:    registry.New(),
		queue:       queue.New(),
		pricer:      pricing.NewCalculator(cfg.BaseRatePerMinute),
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (c *coordinator) Load(ctx context.Context) error {
	slots, err := c.slots.FindAll(ctx)
	if err != nil {
		return apperrors.Internal("Failed to load slots", err)
	}

	stats, err := c.stats.Get(ctx)
	if err != nil {
		if !errors.Is(err, parkingerrors.ErrStatsNotFound) {
			return apperrors.Internal("Failed to load stats", err)
		}
		c.cfg.Log.Warn("Stats document missing, starting from zero counters")
		stats = &model.Stats{}
	}

	openCount, err := c.occupancy.CountOpen(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count open occupancy records", err)
	}

	c.mu.Lock()
	c.registry.Load(slots)
	c.statsCache = *stats
	occupied, total := c.registry.Counts()
	c.mu.Unlock()

	if int64(occupied) != openCount {
		c.cfg.Log.Warn("Occupied slot count diverges from open occupancy records",
			"occupied_slots", occupied,
			"open_records", openCount,
		)
	}

	c.cfg.Log.Info("Parking state loaded",
		"slots", total,
		"occupied", occupied,
		"revenue", stats.Revenue,
	)
	return nil
}

func (c *coordinator) Admit(ctx context.Context, plate string, g *graph.Graph) (AdmissionResult, error) {
	plate = sanitizer.SanitizePlate(plate)
	if err := c.validator.ValidatePlate(plate); err != nil {
		return AdmissionResult{}, err
	}

	c.mu.Lock()
	result, err := c.admitLocked(ctx, plate, g, c.now(), 0)
	var view model.StateView
	changed := err == nil && (result.Status == StatusAdmitted || result.Status == StatusQueued)
	if changed {
		view = c.snapshotLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.cfg.Log.Error("Admission failed", "plate", plate, "error", err)
		return AdmissionResult{}, err
	}

	if changed {
		c.broadcaster.Broadcast(view)
	}
	c.cfg.Log.Info("Admission handled", "plate", plate, "status", result.Status, "slot_id", result.SlotID)
	return result, nil
}

// admitLocked runs the admission state machine under mu. waitSeconds
// is non-zero only for queue drains, where the original enqueue time
// determines the accounted wait.
func (c *coordinator) admitLocked(ctx context.Context, plate string, g *graph.Graph, entryTime time.Time, waitSeconds float64) (AdmissionResult, error) {
	_, err := c.occupancy.FindOpen(ctx, plate)
	if err == nil {
		return AdmissionResult{Status: StatusAlreadyParked}, nil
	}
	if !errors.Is(err, parkingerrors.ErrRecordNotFound) {
		return AdmissionResult{}, apperrors.Internal("Failed to check existing occupancy", err)
	}

	if c.queue.Contains(plate) {
		// Waiting already; a repeat request does not enqueue twice.
		return AdmissionResult{Status: StatusQueued}, nil
	}

	slotID, found := finder.NearestFree(g, c.cfg.EntranceNode, c.registry.FreeByNode())
	if !found {
		c.queue.Push(plate, entryTime)
		return AdmissionResult{Status: StatusQueued}, nil
	}

	result, err := c.claimSlotLocked(ctx, plate, slotID, entryTime, waitSeconds)
	if err != nil {
		return AdmissionResult{}, err
	}
	return result, nil
}

// claimSlotLocked performs the two-phase write: the slot is marked
// occupied before the occupancy record is persisted. A uniqueness
// conflict on the record insert rolls the slot back to free; the
// coordinator lock normally prevents this race, the rollback is a
// second line of defense.
func (c *coordinator) claimSlotLocked(ctx context.Context, plate string, slotID int, entryTime time.Time, waitSeconds float64) (AdmissionResult, error) {
	if err := c.slots.SetOccupancy(ctx, slotID, true, plate); err != nil {
		return AdmissionResult{}, apperrors.Internal("Failed to claim slot", err)
	}
	c.registry.Occupy(slotID, plate)

	occupied, total := c.registry.Counts()
	rate := c.pricer.Rate(occupied, total)

	record := &model.OccupancyRecord{
		Plate:     plate,
		SlotID:    slotID,
		EntryTime: entryTime.UTC().Truncate(time.Millisecond),
	}
	if c.cfg.PricingPolicy == config.PricingAtEntry {
		record.RatePerMinute = &rate
	}

	if err := c.occupancy.InsertOpen(ctx, record); err != nil {
		c.rollbackSlotLocked(ctx, slotID)
		if errors.Is(err, parkingerrors.ErrDuplicatePlate) {
			c.cfg.Log.Warn("Concurrent admission detected, slot claim rolled back", "plate", plate, "slot_id", slotID)
			return AdmissionResult{Status: StatusConflict}, nil
		}
		return AdmissionResult{}, apperrors.Internal("Failed to persist occupancy record", err)
	}

	c.applyStatsLocked(ctx, model.StatsDelta{TotalParked: 1, TotalWaitSeconds: waitSeconds})

	return AdmissionResult{Status: StatusAdmitted, SlotID: slotID, RatePerMinute: rate}, nil
}

func (c *coordinator) rollbackSlotLocked(ctx context.Context, slotID int) {
	if err := c.slots.SetOccupancy(ctx, slotID, false, ""); err != nil {
		c.cfg.Log.Error("Failed to roll back slot claim", "slot_id", slotID, "error", err)
	}
	c.registry.Free(slotID)
}

func (c *coordinator) Release(ctx context.Context, plate string, g *graph.Graph) (ReleaseResult, error) {
	plate = sanitizer.SanitizePlate(plate)
	if err := c.validator.ValidatePlate(plate); err != nil {
		return ReleaseResult{}, err
	}

	c.mu.Lock()
	result, changed, err := c.releaseLocked(ctx, plate, g)
	var view model.StateView
	if changed {
		view = c.snapshotLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.cfg.Log.Error("Release failed", "plate", plate, "error", err)
		return ReleaseResult{}, err
	}

	if changed {
		c.broadcaster.Broadcast(view)
	}
	c.cfg.Log.Info("Release handled", "plate", plate, "status", result.Status, "charge", result.Charge)
	return result, nil
}

func (c *coordinator) releaseLocked(ctx context.Context, plate string, g *graph.Graph) (ReleaseResult, bool, error) {
	record, err := c.occupancy.FindOpen(ctx, plate)
	if err != nil {
		if errors.Is(err, parkingerrors.ErrRecordNotFound) {
			return ReleaseResult{Status: StatusNotFound}, false, nil
		}
		return ReleaseResult{}, false, apperrors.Internal("Failed to look up occupancy record", err)
	}

	exitTime := c.now()
	elapsed := exitTime.Sub(record.EntryTime)
	if elapsed < 0 {
		elapsed = 0
	}

	// The closing rate reflects occupancy at the moment of release,
	// the departing vehicle still counted. Under entry-time pricing
	// the rate captured at admission wins.
	occupied, total := c.registry.Counts()
	rate := c.pricer.Rate(occupied, total)
	if c.cfg.PricingPolicy == config.PricingAtEntry && record.RatePerMinute != nil {
		rate = *record.RatePerMinute
	}
	charge := c.pricer.Charge(elapsed, rate)

	if err := c.occupancy.CloseOpen(ctx, plate, exitTime.UTC().Truncate(time.Millisecond), charge); err != nil {
		return ReleaseResult{}, false, apperrors.Internal("Failed to close occupancy record", err)
	}

	if err := c.slots.SetOccupancy(ctx, record.SlotID, false, ""); err != nil {
		return ReleaseResult{}, false, apperrors.Internal("Failed to free slot", err)
	}
	c.registry.Free(record.SlotID)

	c.applyStatsLocked(ctx, model.StatsDelta{
		Revenue:          charge,
		TotalExited:      1,
		TotalWaitSeconds: elapsed.Seconds(),
	})

	c.drainLocked(ctx, g)

	return ReleaseResult{Status: StatusReleased, Charge: charge}, true, nil
}

// drainLocked makes exactly one attempt to admit the head of the wait
// queue after a slot has freed. If no slot is free at drain time, or
// the claim conflicts, the popped entry is dropped, never re-queued.
func (c *coordinator) drainLocked(ctx context.Context, g *graph.Graph) {
	entry, ok := c.queue.Pop()
	if !ok {
		return
	}

	slotID, found := finder.NearestFree(g, c.cfg.EntranceNode, c.registry.FreeByNode())
	if !found {
		c.cfg.Log.Warn("No free slot at drain time, dropping queue entry", "plate", entry.Plate)
		return
	}

	waitSeconds := c.now().Sub(entry.EnqueuedAt).Seconds()
	if waitSeconds < 0 {
		waitSeconds = 0
	}

	result, err := c.claimSlotLocked(ctx, entry.Plate, slotID, c.now(), waitSeconds)
	if err != nil {
		c.cfg.Log.Error("Queue drain failed, dropping entry", "plate", entry.Plate, "error", err)
		return
	}
	if result.Status != StatusAdmitted {
		c.cfg.Log.Warn("Queue drain did not admit, dropping entry", "plate", entry.Plate, "status", result.Status)
		return
	}

	c.cfg.Log.Info("Queued vehicle admitted",
		"plate", entry.Plate,
		"slot_id", result.SlotID,
		"wait_seconds", waitSeconds,
	)
}

// applyStatsLocked persists a stats increment and mirrors it into the
// cache. A failed write is logged and skipped in the cache as well;
// counters are reconcilable from the occupancy collection.
func (c *coordinator) applyStatsLocked(ctx context.Context, delta model.StatsDelta) {
	if err := c.stats.Apply(ctx, delta); err != nil {
		c.cfg.Log.Error("Failed to persist stats update", "error", err)
		return
	}
	c.statsCache.Revenue += delta.Revenue
	c.statsCache.TotalParked += delta.TotalParked
	c.statsCache.TotalExited += delta.TotalExited
	c.statsCache.TotalWaitSeconds += delta.TotalWaitSeconds
}

func (c *coordinator) Status(ctx context.Context, plate string) (*VehicleStatus, error) {
	plate = sanitizer.SanitizePlate(plate)
	if err := c.validator.ValidatePlate(plate); err != nil {
		return nil, err
	}

	record, err := c.occupancy.FindOpen(ctx, plate)
	if err == nil {
		entry := record.EntryTime
		return &VehicleStatus{
			Plate:     plate,
			State:     VehicleParked,
			SlotID:    record.SlotID,
			EntryTime: &entry,
		}, nil
	}
	if !errors.Is(err, parkingerrors.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to look up occupancy record", err)
	}

	c.mu.Lock()
	position := c.queue.Position(plate)
	c.mu.Unlock()

	if position > 0 {
		return &VehicleStatus{
			Plate:         plate,
			State:         VehicleQueued,
			QueuePosition: position,
		}, nil
	}

	return nil, apperrors.NotFoundWithID("Vehicle", plate)
}

func (c *coordinator) Snapshot() model.StateView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *coordinator) snapshotLocked() model.StateView {
	occupied, total := c.registry.Counts()

	view := model.StateView{
		Slots:         c.registry.Views(),
		QueueLength:   c.queue.Len(),
		RatePerMinute: c.pricer.Rate(occupied, total),
		Revenue:       c.statsCache.Revenue,
		Occupied:      occupied,
		Total:         total,
	}
	if c.statsCache.TotalExited > 0 {
		avg := c.statsCache.TotalWaitSeconds / float64(c.statsCache.TotalExited)
		view.AvgWaitSeconds = &avg
	}
	return view
}

// Subscribe registers a new observer and pushes the current snapshot
// to it immediately. A failed initial delivery removes the subscriber
// again.
func (c *coordinator) Subscribe(sub broadcast.Subscriber) string {
	view := c.Snapshot()
	handle := c.broadcaster.Subscribe(sub)
	if err := sub.Deliver(view); err != nil {
		c.cfg.Log.Warn("Initial snapshot delivery failed", "handle", handle, "error", err)
		c.broadcaster.Unsubscribe(handle)
	}
	return handle
}

func (c *coordinator) Unsubscribe(handle string) {
	c.broadcaster.Unsubscribe(handle)
}
