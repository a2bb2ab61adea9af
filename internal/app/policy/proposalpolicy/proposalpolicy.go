// Package proposalpolicy holds the admission rules for the proposal
// workflow: whether a student may send a proposal or join request to a
// supervisor, and whether a supervisor may decide on one.
package proposalpolicy

import (
	"context"
	"errors"

	"github.com/capstonehub/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxPendingRequests caps how many undecided requests a student can have
// out at once.
const MaxPendingRequests = 2

// Denial reasons for CheckSubmit, in the order the checks run. Handlers
// map these to 409 responses with the error message as the body.
var (
	ErrAlreadyGrouped        = errors.New("you already belong to a group")
	ErrTooManyPending        = errors.New("you cannot have more than 2 pending requests")
	ErrSupervisorUnavailable = errors.New("supervisor has no available slots")
	ErrRejectedBefore        = errors.New("this supervisor has already rejected your request")
	ErrAlreadyPending        = errors.New("you already have a pending request with this supervisor")
	ErrTitleTaken            = errors.New("a project with this title already exists")
)

// CheckSubmit runs the proposal preconditions in order and returns the
// first failure. titleCI is the folded form of the proposed title; pass
// "" for join requests to a supervisor-offered idea, which reuses the
// idea's existing title.
//
// The title uniqueness check here is advisory: the unique index on
// projects.title_ci is the authoritative guard against races.
func CheckSubmit(ctx context.Context, db *mongo.Database, student *models.Student, supervisor *models.Supervisor, titleCI string) error {
	if student.IsGroupMember {
		return ErrAlreadyGrouped
	}
	if len(student.Requests.Pending) >= MaxPendingRequests {
		return ErrTooManyPending
	}
	if supervisor == nil || supervisor.Slots <= 0 {
		return ErrSupervisorUnavailable
	}
	for _, sid := range student.Requests.Rejected {
		if sid == supervisor.ID {
			return ErrRejectedBefore
		}
	}
	for _, sid := range student.Requests.Pending {
		if sid == supervisor.ID {
			return ErrAlreadyPending
		}
	}
	if titleCI != "" {
		n, err := db.Collection("projects").CountDocuments(ctx, bson.M{"title_ci": titleCI})
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrTitleTaken
		}
	}
	return nil
}

// IsDenial reports whether err is one of the CheckSubmit precondition
// failures (as opposed to a database error).
func IsDenial(err error) bool {
	return errors.Is(err, ErrAlreadyGrouped) ||
		errors.Is(err, ErrTooManyPending) ||
		errors.Is(err, ErrSupervisorUnavailable) ||
		errors.Is(err, ErrRejectedBefore) ||
		errors.Is(err, ErrAlreadyPending) ||
		errors.Is(err, ErrTitleTaken)
}

// FindRequest locates the inbox entry for a project in a supervisor's
// request list. Returns nil if the supervisor holds no such request,
// which means the supervisor may not decide on it.
func FindRequest(supervisor *models.Supervisor, projectID primitive.ObjectID) *models.ProjectRequest {
	for i := range supervisor.ProjectRequests {
		if supervisor.ProjectRequests[i].ProjectID == projectID {
			return &supervisor.ProjectRequests[i]
		}
	}
	return nil
}

// CanDecide reports whether a supervisor may accept or reject the given
// project request: the request must sit in their inbox and must not be
// decided already.
func CanDecide(supervisor *models.Supervisor, projectID primitive.ObjectID) bool {
	req := FindRequest(supervisor, projectID)
	return req != nil && !req.IsAccepted
}
