package email

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
)

func owner(t *testing.T) *directory.Actor {
	t.Helper()
	a, err := directory.ReconstructActor(3, directory.ActorParams{
		Name:     "Sam <ops>",
		Username: "sam",
		Role:     directory.RoleTeamMember,
		UserType: directory.UserTypeProd,
	}, directory.ActivityOnline, "active", true, "", time.Now(), time.Now())
	require.NoError(t, err)
	return a
}

func TestSMTPDecisionNotifier_ComposesNotice(t *testing.T) {
	var sent []*gomail.Message
	n := NewSMTPDecisionNotifier(SMTPConfig{FromAddress: "noreply@deskhub.local", FromName: "Deskhub", To: "hr@deskhub.local"})
	n.send = func(m ...*gomail.Message) error {
		sent = append(sent, m...)
		return nil
	}

	err := n.NotifyDecision(context.Background(), owner(t), &dto.HolidayDTO{
		ID: 12, From: "2026-07-01", To: "2026-07-03", Status: "Approve", IsOkByChef: true, IsOkByHr: true,
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	assert.Equal(t, []string{"hr@deskhub.local"}, sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Holiday request #12: Approve"}, sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sam &lt;ops&gt;")
}

func TestSMTPDecisionNotifier_Errors(t *testing.T) {
	n := NewSMTPDecisionNotifier(SMTPConfig{})
	err := n.NotifyDecision(context.Background(), owner(t), &dto.HolidayDTO{ID: 1})
	assert.Error(t, err)

	n = NewSMTPDecisionNotifier(SMTPConfig{To: "hr@deskhub.local"})
	n.send = func(m ...*gomail.Message) error { return fmt.Errorf("connection refused") }
	err = n.NotifyDecision(context.Background(), owner(t), &dto.HolidayDTO{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
