package serviceimpl

import (
	"context"
	"fmt"

	"faceattend/domain/matching"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
	"faceattend/pkg/logger"
)

type RecognitionServiceImpl struct {
	extractor        services.SignatureExtractor
	employeeRepo     repositories.EmployeeRepository
	rosterCache      repositories.RosterCache
	attendanceSvc    services.AttendanceService
	defaultThreshold float64
}

// NewRecognitionService wires extraction, matching and the ledger together.
// rosterCache may be nil; defaultThreshold <= 0 falls back to the matcher's
// built-in default.
func NewRecognitionService(
	extractor services.SignatureExtractor,
	employeeRepo repositories.EmployeeRepository,
	rosterCache repositories.RosterCache,
	attendanceSvc services.AttendanceService,
	defaultThreshold float64,
) services.RecognitionService {
	if defaultThreshold <= 0 {
		defaultThreshold = matching.DefaultThreshold
	}
	return &RecognitionServiceImpl{
		extractor:        extractor,
		employeeRepo:     employeeRepo,
		rosterCache:      rosterCache,
		attendanceSvc:    attendanceSvc,
		defaultThreshold: defaultThreshold,
	}
}

func (s *RecognitionServiceImpl) CheckInByImage(ctx context.Context, image []byte, mimeType string, threshold float64) ([]services.CheckInResult, error) {
	probes, err := s.extractor.ExtractSignatures(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to extract face signatures: %w", err)
	}
	if len(probes) == 0 {
		return nil, services.ErrNoFaceDetected
	}

	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	roster, err := s.loadRoster(ctx)
	if err != nil {
		return nil, err
	}

	recognized, err := matching.Recognize(probes, roster, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to match faces against roster: %w", err)
	}

	logger.Face("recognize", "Image matched against roster", map[string]interface{}{
		"faces":      len(probes),
		"recognized": len(recognized),
		"roster":     len(roster),
		"threshold":  threshold,
	})

	if len(recognized) == 0 {
		return []services.CheckInResult{}, nil
	}

	return s.attendanceSvc.CheckIn(ctx, recognized)
}

// loadRoster returns the enrolled roster, preferring the cached snapshot.
// Cache failures fall back to the repository and are only logged.
func (s *RecognitionServiceImpl) loadRoster(ctx context.Context) ([]matching.RosterEntry, error) {
	if s.rosterCache != nil {
		roster, ok, err := s.rosterCache.GetRoster(ctx)
		if err != nil {
			logger.FaceError("roster_cache_get", "Roster cache read failed", err, nil)
		} else if ok {
			return roster, nil
		}
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	roster := make([]matching.RosterEntry, len(employees))
	for i, employee := range employees {
		roster[i] = matching.RosterEntry{
			EmployeeID: employee.ID,
			Embedding:  employee.Embedding.Slice(),
		}
	}

	if s.rosterCache != nil {
		if err := s.rosterCache.SetRoster(ctx, roster); err != nil {
			logger.FaceError("roster_cache_set", "Roster cache write failed", err, nil)
		}
	}

	return roster, nil
}
