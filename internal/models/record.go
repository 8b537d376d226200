package models

import "time"

// ChallengeRecord is an immutable history entry for a resolved challenge
type ChallengeRecord struct {
	ChallengeID string

	// PlayerIDs is the participant snapshot at resolution time
	PlayerIDs []string

	// WinnerIDs is a subset of PlayerIDs
	WinnerIDs []string

	Timestamp time.Time
}

// Clone returns a copy that shares no slices with the record
func (r *ChallengeRecord) Clone() *ChallengeRecord {
	if r == nil {
		return nil
	}
	return &ChallengeRecord{
		ChallengeID: r.ChallengeID,
		PlayerIDs:   append([]string(nil), r.PlayerIDs...),
		WinnerIDs:   append([]string(nil), r.WinnerIDs...),
		Timestamp:   r.Timestamp,
	}
}
