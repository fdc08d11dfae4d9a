package app

import (
	"context"
	"fmt"
	"time"

	"meditour_admin/internal/domain"
	"meditour_admin/internal/i18n"
)

// QueryService serves the back-office read screens with a cache-aside layer
// in front of the repository.
type QueryService struct {
	hospitals domain.HospitalLookup
	reader    domain.ReservationReader
	cache     domain.Cache
	cacheTTL  time.Duration
}

func NewQueryService(h domain.HospitalLookup, r domain.ReservationReader, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{hospitals: h, reader: r, cache: c, cacheTTL: ttl}
}

// GetHospital resolves a hospital's display name for one locale, cached per
// (id, lang).
func (s *QueryService) GetHospital(ctx context.Context, id int64, lang string) (domain.HospitalView, error) {
	loc := i18n.Parse(lang)
	key := fmt.Sprintf("hospital:%d:%s", id, loc)
	var hv domain.HospitalView
	if ok, _ := s.cache.Get(ctx, key, &hv); ok {
		return hv, nil
	}
	h, err := s.hospitals.FindHospital(ctx, id)
	if err != nil {
		return domain.HospitalView{}, err
	}
	hv = domain.HospitalView{ID: h.ID, Name: h.Name.ForLocale(string(loc)), Language: string(loc)}
	_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	return hv, nil
}

func (s *QueryService) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	key := fmt.Sprintf("reservation:%d", id)
	var r domain.Reservation
	if ok, _ := s.cache.Get(ctx, key, &r); ok {
		return r, nil
	}
	r, err := s.reader.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	return r, nil
}

func (s *QueryService) ListReservations(ctx context.Context, limit int) ([]domain.Reservation, error) {
	return s.reader.ListReservations(ctx, limit)
}

// ListStatusHistory is never cached: the timeline screen must show a fresh
// append-only trail.
func (s *QueryService) ListStatusHistory(ctx context.Context, reservationID int64) ([]domain.StatusHistory, error) {
	return s.reader.ListStatusHistory(ctx, reservationID)
}
