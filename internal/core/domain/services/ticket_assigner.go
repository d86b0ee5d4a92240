package services

import (
	"cmp"
	"slices"

	"parcelmybox/internal/core/domain/model/user"
)

// TicketAssigner spreads new support tickets over the staff round-robin.
//
// Staff are ordered by username. The next assignee is the first active staff
// member whose username sorts after the previous assignee's, wrapping to the
// start of the list.
type TicketAssigner struct{}

func NewTicketAssigner() TicketAssigner {
	return TicketAssigner{}
}

// Next returns the staff member to receive the next ticket, or nil when there
// is no active staff. lastAssignee is the username of whoever got the most
// recently assigned ticket, empty if none.
func (TicketAssigner) Next(staff []*user.User, lastAssignee string) *user.User {
	candidates := make([]*user.User, 0, len(staff))
	for _, u := range staff {
		if u.Validate() != nil || !u.IsActive() || !u.IsStaff() {
			continue
		}
		candidates = append(candidates, u)
	}
	if len(candidates) == 0 {
		return nil
	}

	slices.SortFunc(candidates, func(a, b *user.User) int {
		return cmp.Compare(a.Username(), b.Username())
	})

	for _, u := range candidates {
		if u.Username() > lastAssignee {
			return u
		}
	}
	return candidates[0]
}
