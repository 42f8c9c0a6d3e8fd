// Package services contains the domain logic: the credential ledger, the
// status resolution engine, the vote integrity auditor and the boundary
// operations collaborators call.
package services

import (
	"time"

	"github.com/tkrendel/attest/internal/domain/entities"
)

const (
	// anonymousWeight is the score contribution of a vote with no credential.
	anonymousWeight = 0.1
	// selfMultiplier boosts votes a target casts on claims about themselves.
	selfMultiplier = 10.0
)

// VoteWeight describes how much one vote counts at the moment it was cast.
type VoteWeight struct {
	Weight        float64
	Self          bool
	Authenticated bool
}

// Contribution returns the signed score contribution of a vote of the given
// kind carrying this weight.
func (w VoteWeight) Contribution(kind entities.VoteKind) float64 {
	c := float64(kind.Sign()) * w.Weight
	if w.Self {
		c *= selfMultiplier
	}
	return c
}

// WeightOf evaluates a credential against the given target at the given
// moment. Rules, in order: no credential means a small fixed anonymous
// weight; a valid credential carries its trust weight, as does a revoked one
// for votes predating the revocation; anything else counts for nothing.
// Historical votes are judged by the credential state as of the vote's
// timestamp, not its current state. Never errors: broken credential state
// degrades to zero weight.
func WeightOf(cred *entities.Credential, asOf time.Time, targetID string) VoteWeight {
	if cred == nil {
		return VoteWeight{Weight: anonymousWeight}
	}

	switch cred.Status {
	case entities.CredentialValid:
		return trustedWeight(cred, targetID)
	case entities.CredentialRevoked:
		if cred.RevokedAt != nil && asOf.Before(*cred.RevokedAt) {
			return trustedWeight(cred, targetID)
		}
	}
	return VoteWeight{}
}

func trustedWeight(cred *entities.Credential, targetID string) VoteWeight {
	return VoteWeight{
		Weight:        cred.TrustWeight,
		Self:          cred.OwnerTargetID != "" && cred.OwnerTargetID == targetID,
		Authenticated: true,
	}
}
