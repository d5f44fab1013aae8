package service

import (
	"context"
	"errors"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	"github.com/vineetm1204-m/ODAutomation/internal/repository"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
	"github.com/vineetm1204-m/ODAutomation/pkg/mailer"
)

func newTestEmailService(repo *repository.Repository, relay mailer.Relay) EmailService {
	return NewEmailService(repo, form.LayoutStudents, fixedComposer(), EmailOptions{
		Relay:   relay,
		From:    "od@college.edu",
		Timeout: time.Second,
	}, nil, zap.NewNop())
}

func validSend() *dto.SendEmailRequest {
	return &dto.SendEmailRequest{
		To:      "HOD <hod@college.edu>",
		Subject: "Request for OD Approval – Friday, March 15, 2024",
		Body:    "Respected Dr. Singh,",
	}
}

func TestEmailService_Generate(t *testing.T) {
	svc := newTestEmailService(newTestRepo(), nil)

	resp, err := svc.Generate(context.Background(), &dto.GenerateEmailRequest{
		Coordinator: "Dr. Singh",
		Date:        "2024-03-15",
		Subjects: []model.SubjectSnapshot{{
			Name: "CS101 - OS", Faculty: "Dr. Rao", Time: "10:15 AM - 11:10 AM",
			Students: []string{"Alice", "Bob"},
		}},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !resp.Success || !strings.Contains(resp.Email, "1. Subject: CS101 - OS") || !strings.Contains(resp.Email, "Students: Alice, Bob") {
		t.Errorf("unexpected email:\n%s", resp.Email)
	}
}

func TestEmailService_GenerateFromForm(t *testing.T) {
	repo := newTestRepo()
	forms := NewFormService(repo, form.LayoutStudents, form.ClearOnMatch, nil, zap.NewNop())
	svc := newTestEmailService(repo, nil)
	ctx := context.Background()

	view, _ := forms.Get(ctx, "sid")
	id := view.Cards[0].ID
	_, _ = forms.UpdateSubject(ctx, "sid", id, &dto.UpdateSubjectRequest{
		SubjectCode: strPtr("CS101"), Faculty: strPtr("Dr. Rao"), Time: strPtr("09:15 AM - 10:10 AM"),
	})
	_, _ = forms.UpdateStudent(ctx, "sid", view.Cards[0].Students[0].ID, &dto.UpdateStudentRequest{Name: "Alice"})

	resp, err := svc.GenerateFromForm(ctx, "sid", &dto.FormEmailRequest{Coordinator: "Dr. Singh", Date: "2024-03-15"})
	if err != nil {
		t.Fatalf("GenerateFromForm failed: %v", err)
	}
	if !strings.Contains(resp.Email, "1. Subject: CS101\n   Faculty: Dr. Rao\n   Time: 09:15 AM - 10:10 AM\n   Students: Alice\n") {
		t.Errorf("form not rendered:\n%s", resp.Email)
	}

	if _, err := svc.GenerateFromForm(ctx, "fresh", &dto.FormEmailRequest{Coordinator: "Dr. Singh", Date: "2024-03-15"}); !errors.Is(err, ErrEmailNoCompleteSubject) {
		t.Errorf("expected ErrEmailNoCompleteSubject for an empty form, got %v", err)
	}
}

func TestEmailService_Send(t *testing.T) {
	repo := newTestRepo()
	relay := &mockRelay{messageID: "<abc@college.edu>"}
	svc := newTestEmailService(repo, relay)
	ctx := context.Background()

	resp, err := svc.Send(ctx, validSend())
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !resp.Success || resp.MessageID != "<abc@college.edu>" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(relay.sent) != 1 || relay.sent[0].To != "hod@college.edu" || relay.sent[0].From != "od@college.edu" {
		t.Fatalf("unexpected message: %+v", relay.sent)
	}

	logs, _ := svc.RecentDispatches(ctx, 10)
	if len(logs) != 1 || logs[0].Status != model.DispatchSent || logs[0].MessageID != "<abc@college.edu>" {
		t.Errorf("dispatch not recorded: %+v", logs)
	}
}

func TestEmailService_SendTransportError(t *testing.T) {
	repo := newTestRepo()
	relay := &mockRelay{err: &textproto.Error{Code: 535, Msg: "authentication failed"}}
	svc := newTestEmailService(repo, relay)
	ctx := context.Background()

	_, err := svc.Send(ctx, validSend())
	var te *apperrors.TransportError
	if !errors.As(err, &te) || te.Kind != apperrors.TransportAuth {
		t.Fatalf("expected EAUTH transport error, got %v", err)
	}

	logs, _ := svc.RecentDispatches(ctx, 10)
	if len(logs) != 1 || logs[0].Status != model.DispatchFailed || logs[0].ErrorCode != "EAUTH" {
		t.Errorf("failure not recorded: %+v", logs)
	}
}

func TestEmailService_SendValidation(t *testing.T) {
	svc := newTestEmailService(newTestRepo(), &mockRelay{})
	ctx := context.Background()

	cases := []struct {
		name string
		mod  func(r *dto.SendEmailRequest)
		want error
	}{
		{"missing to", func(r *dto.SendEmailRequest) { r.To = "" }, ErrSendMissingFields},
		{"missing body", func(r *dto.SendEmailRequest) { r.Body = " " }, ErrSendMissingFields},
		{"bad recipient", func(r *dto.SendEmailRequest) { r.To = "not-an-address" }, ErrInvalidRecipient},
		{"header injection", func(r *dto.SendEmailRequest) { r.Subject = "OD\r\nBcc: x@y.z" }, ErrInvalidMailSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSend()
			tc.mod(req)
			if _, err := svc.Send(ctx, req); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestEmailService_SendNotConfigured(t *testing.T) {
	svc := newTestEmailService(newTestRepo(), nil)
	if _, err := svc.Send(context.Background(), validSend()); !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}
}

func TestEmailService_DispatchLogFailureDoesNotFailSend(t *testing.T) {
	repo := newTestRepo()
	repo.DispatchLog = failingDispatchLogRepo{}
	svc := newTestEmailService(repo, &mockRelay{messageID: "id-1"})

	if _, err := svc.Send(context.Background(), validSend()); err != nil {
		t.Fatalf("Send should succeed when the dispatch log is down: %v", err)
	}
}
