// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/clock"
)

// ServiceConfig holds the parameters for NewService.
type ServiceConfig struct {
	// AuditLog, when set, receives one line per gate check through
	// WriteAuditRequired. A failed append fails the check.
	AuditLog string

	// Clock stamps audit lines. Defaults to the real clock.
	Clock clock.Clock

	// Logger receives check results. Nil discards them.
	Logger *slog.Logger
}

// Service runs gate checks against blocker register files.
type Service struct {
	auditLog string
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService returns a Service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Service{auditLog: cfg.AuditLog, clock: cfg.Clock, logger: cfg.Logger}
}

// CheckRegister loads the register at path and evaluates both gates.
func (s *Service) CheckRegister(path string) (Promotability, error) {
	rows, err := LoadBlockerRegister(path)
	if err != nil {
		return Promotability{}, err
	}
	verdict, err := EvaluatePromotability(rows)
	if err != nil {
		s.logger.Warn("blocker register rejected", "register", path, "error", err)
		return Promotability{}, err
	}

	if s.auditLog != "" {
		line := fmt.Sprintf("%s gate_check register=%s promotable=%t phase=%s rc=%s blocking=%s",
			clock.FormatUTC(s.clock.Now()), path, verdict.Promotable,
			verdict.PhaseAcceptance.Reason, verdict.RcEntry.Reason,
			strings.Join(verdict.RcEntry.BlockingBlockerIDs, ";"))
		if err := WriteAuditRequired(s.auditLog, line); err != nil {
			return Promotability{}, err
		}
	}

	s.logger.Info("release gates evaluated",
		"register", path,
		"blockers", verdict.BlockerCount,
		"promotable", verdict.Promotable,
		"phase_acceptance", verdict.PhaseAcceptance.Reason,
		"rc_entry", verdict.RcEntry.Reason,
	)
	return verdict, nil
}
