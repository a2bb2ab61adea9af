package proposalpolicy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/capstonehub/capstonehub/internal/app/policy/proposalpolicy"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func student() *models.Student {
	return &models.Student{ID: primitive.NewObjectID()}
}

func supervisor(slots int) *models.Supervisor {
	return &models.Supervisor{ID: primitive.NewObjectID(), Slots: slots}
}

func TestCheckSubmit_AlreadyGrouped(t *testing.T) {
	s := student()
	s.IsGroupMember = true

	err := proposalpolicy.CheckSubmit(context.Background(), nil, s, supervisor(3), "")
	if !errors.Is(err, proposalpolicy.ErrAlreadyGrouped) {
		t.Errorf("expected ErrAlreadyGrouped, got %v", err)
	}
}

func TestCheckSubmit_TooManyPending(t *testing.T) {
	s := student()
	s.Requests.Pending = []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	err := proposalpolicy.CheckSubmit(context.Background(), nil, s, supervisor(3), "")
	if !errors.Is(err, proposalpolicy.ErrTooManyPending) {
		t.Errorf("expected ErrTooManyPending, got %v", err)
	}
}

func TestCheckSubmit_NoSlots(t *testing.T) {
	err := proposalpolicy.CheckSubmit(context.Background(), nil, student(), supervisor(0), "")
	if !errors.Is(err, proposalpolicy.ErrSupervisorUnavailable) {
		t.Errorf("expected ErrSupervisorUnavailable, got %v", err)
	}
}

func TestCheckSubmit_NilSupervisor(t *testing.T) {
	err := proposalpolicy.CheckSubmit(context.Background(), nil, student(), nil, "")
	if !errors.Is(err, proposalpolicy.ErrSupervisorUnavailable) {
		t.Errorf("expected ErrSupervisorUnavailable, got %v", err)
	}
}

func TestCheckSubmit_RejectedBefore(t *testing.T) {
	sup := supervisor(3)
	s := student()
	s.Requests.Rejected = []primitive.ObjectID{sup.ID}

	err := proposalpolicy.CheckSubmit(context.Background(), nil, s, sup, "")
	if !errors.Is(err, proposalpolicy.ErrRejectedBefore) {
		t.Errorf("expected ErrRejectedBefore, got %v", err)
	}
}

func TestCheckSubmit_AlreadyPending(t *testing.T) {
	sup := supervisor(3)
	s := student()
	s.Requests.Pending = []primitive.ObjectID{sup.ID}

	err := proposalpolicy.CheckSubmit(context.Background(), nil, s, sup, "")
	if !errors.Is(err, proposalpolicy.ErrAlreadyPending) {
		t.Errorf("expected ErrAlreadyPending, got %v", err)
	}
}

func TestCheckSubmit_RejectionBeatsPendingCount(t *testing.T) {
	// A rejected supervisor with only one slot free must still report the
	// rejection, not the slot shortage, because checks run in order.
	sup := supervisor(1)
	s := student()
	s.Requests.Pending = []primitive.ObjectID{primitive.NewObjectID()}
	s.Requests.Rejected = []primitive.ObjectID{sup.ID}

	err := proposalpolicy.CheckSubmit(context.Background(), nil, s, sup, "")
	if !errors.Is(err, proposalpolicy.ErrRejectedBefore) {
		t.Errorf("expected ErrRejectedBefore, got %v", err)
	}
}

func TestCheckSubmit_AllClear(t *testing.T) {
	err := proposalpolicy.CheckSubmit(context.Background(), nil, student(), supervisor(1), "")
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestIsDenial(t *testing.T) {
	if !proposalpolicy.IsDenial(proposalpolicy.ErrTitleTaken) {
		t.Error("ErrTitleTaken should be a denial")
	}
	if proposalpolicy.IsDenial(errors.New("connection reset")) {
		t.Error("arbitrary errors are not denials")
	}
}

func TestCanDecide(t *testing.T) {
	projectID := primitive.NewObjectID()
	sup := supervisor(3)
	sup.ProjectRequests = []models.ProjectRequest{
		{ProjectID: projectID, StudentID: primitive.NewObjectID()},
	}

	if !proposalpolicy.CanDecide(sup, projectID) {
		t.Error("expected supervisor to be able to decide on inbox request")
	}
	if proposalpolicy.CanDecide(sup, primitive.NewObjectID()) {
		t.Error("expected no decision right on unknown project")
	}

	sup.ProjectRequests[0].IsAccepted = true
	if proposalpolicy.CanDecide(sup, projectID) {
		t.Error("expected no decision right on already-accepted request")
	}
}
