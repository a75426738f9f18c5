package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"backend/internal/domain/models"
)

// fakeInventoryStore mirrors the MySQL repo's per-row atomicity with a
// mutex, so concurrent service-level tests exercise real interleavings.
type fakeInventoryStore struct {
	mu      sync.Mutex
	recs    map[models.InventoryKey]*models.InventoryRecord
	classes map[string][]models.TrainClass

	failReleases int // fail this many Release calls before working again
	releaseCalls int
}

func newFakeInventoryStore(trains ...models.Train) *fakeInventoryStore {
	s := &fakeInventoryStore{
		recs:    map[models.InventoryKey]*models.InventoryRecord{},
		classes: map[string][]models.TrainClass{},
	}
	for _, t := range trains {
		s.classes[t.TrainNumber] = t.Classes
	}
	return s
}

func (s *fakeInventoryStore) EnsureRecord(rec models.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[rec.Key()]; !ok {
		cp := rec
		s.recs[rec.Key()] = &cp
	}
	return nil
}

func (s *fakeInventoryStore) Reserve(key models.InventoryKey, seats int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[key]
	if !ok {
		return false, nil
	}
	if rec.ConfirmedSeats+seats > rec.TotalSeats {
		return false, nil
	}
	rec.ConfirmedSeats += seats
	return true, nil
}

func (s *fakeInventoryStore) Release(key models.InventoryKey, seats int) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseCalls++
	if s.failReleases > 0 {
		s.failReleases--
		return false, false, errors.New("store unavailable")
	}
	rec, ok := s.recs[key]
	if !ok {
		return false, false, nil
	}
	if rec.ConfirmedSeats >= seats {
		rec.ConfirmedSeats -= seats
		return true, false, nil
	}
	if rec.ConfirmedSeats > 0 {
		rec.ConfirmedSeats = 0
		return false, true, nil
	}
	return false, false, nil
}

func (s *fakeInventoryStore) Get(key models.InventoryKey) (models.InventoryRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[key]
	if !ok {
		return models.InventoryRecord{}, false, nil
	}
	return *rec, true, nil
}

func (s *fakeInventoryStore) Snapshot(trainNumber, journeyDate string) ([]models.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.InventoryRecord{}
	for _, c := range s.classes[trainNumber] {
		rec := models.InventoryRecord{
			TrainNumber: trainNumber,
			JourneyDate: journeyDate,
			ClassType:   c.Type,
			TotalSeats:  c.TotalSeats,
		}
		if existing, ok := s.recs[rec.Key()]; ok {
			rec.ConfirmedSeats = existing.ConfirmedSeats
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeTrains struct {
	trains   map[string]models.Train
	stations map[string]bool
}

func newFakeTrains(trains ...models.Train) *fakeTrains {
	f := &fakeTrains{trains: map[string]models.Train{}, stations: map[string]bool{}}
	for _, t := range trains {
		f.trains[t.TrainNumber] = t
		f.stations[t.FromStation] = true
		f.stations[t.ToStation] = true
	}
	return f
}

func (f *fakeTrains) GetTrain(trainNumber string) (models.Train, bool, error) {
	t, ok := f.trains[trainNumber]
	return t, ok, nil
}

func (f *fakeTrains) ListByRoute(fromStation, toStation string) ([]models.Train, error) {
	out := []models.Train{}
	for _, t := range f.trains {
		if t.FromStation == fromStation && t.ToStation == toStation {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime < out[j].DepartureTime })
	return out, nil
}

func (f *fakeTrains) HasStation(code string) (bool, error) {
	return f.stations[code], nil
}

// fakeBookingStore keeps bookings under their PNR key with the same
// unique-key and status-gate semantics as the MySQL repo.
type fakeBookingStore struct {
	mu     sync.Mutex
	byPNR  map[string]models.Booking
	nextID int64

	failInserts int // fail this many Insert calls with a store error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{byPNR: map[string]models.Booking{}}
}

func (s *fakeBookingStore) Insert(b models.Booking) (models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInserts > 0 {
		s.failInserts--
		return models.Booking{}, false, errors.New("store unavailable")
	}
	if _, exists := s.byPNR[b.PNR]; exists {
		return models.Booking{}, true, nil
	}
	s.nextID++
	b.ID = s.nextID
	s.byPNR[b.PNR] = b
	return b, false, nil
}

func (s *fakeBookingStore) GetByPNR(pnr string) (models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byPNR[pnr]
	return b, ok, nil
}

func (s *fakeBookingStore) MarkCancelled(pnr string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byPNR[pnr]
	if !ok || b.Status != models.BookingConfirmed {
		return false, nil
	}
	b.Status = models.BookingCancelled
	s.byPNR[pnr] = b
	return true, nil
}

func (s *fakeBookingStore) seed(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.byPNR[b.PNR] = b
}

// flakyReleaser fails a fixed number of times before succeeding.
type flakyReleaser struct {
	mu       sync.Mutex
	failures int
	calls    int
	released map[models.InventoryKey]int
}

func (r *flakyReleaser) Release(key models.InventoryKey, seats int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failures > 0 {
		r.failures--
		return fmt.Errorf("release failed (call %d)", r.calls)
	}
	if r.released == nil {
		r.released = map[models.InventoryKey]int{}
	}
	r.released[key] += seats
	return nil
}
