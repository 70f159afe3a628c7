package http

import (
	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

func toUserDTO(u domain.User) reconsdk.User {
	return reconsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toScanDTO(s domain.ScanRecord) reconsdk.ScanRecord {
	return reconsdk.ScanRecord{
		ID:           s.ID,
		URLOrIP:      s.URLOrIP,
		ScanType:     string(s.ScanType),
		ScanCategory: string(s.ScanCategory),
		ScanResults:  s.Results,
		UserID:       s.UserID,
		CreatedAt:    s.CreatedAt,
	}
}

func toLogDTO(e domain.LogEntry) reconsdk.LogEntry {
	out := reconsdk.LogEntry{
		ID:        e.ID,
		Action:    e.Action,
		Timestamp: e.Timestamp,
	}
	if e.UserID != nil {
		out.UserID = *e.UserID
	}
	return out
}
