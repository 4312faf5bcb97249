// Package testutil has testify mocks of the shared collaborators used by
// use case tests across services.
package testutil

import (
	"context"
	"io"

	"dalil/pkg/audit"
	"dalil/pkg/email"
	"dalil/pkg/queue"

	"github.com/stretchr/testify/mock"
)

type Recorder struct {
	mock.Mock
}

func (m *Recorder) Record(entry audit.Entry) {
	m.Called(entry)
}

// Entries returns every recorded entry in call order.
func (m *Recorder) Entries() []audit.Entry {
	var entries []audit.Entry
	for _, call := range m.Calls {
		if call.Method == "Record" {
			entries = append(entries, call.Arguments.Get(0).(audit.Entry))
		}
	}
	return entries
}

type Revalidator struct {
	mock.Mock
}

func (m *Revalidator) RevalidatePath(paths ...string) {
	m.Called(paths)
}

func (m *Revalidator) RevalidateTag(tags ...string) {
	m.Called(tags)
}

// Storage records uploads; the body is drained so callers see a normal read.
type Storage struct {
	mock.Mock
}

func (m *Storage) UploadFile(bucket, key string, body io.ReadSeeker, contentType string) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	args := m.Called(bucket, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *Storage) DeleteFile(bucket, key string) error {
	args := m.Called(bucket, key)
	return args.Error(0)
}

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(msg.To, msg.Subject)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishCampaignTask(task queue.CampaignTask) error {
	args := m.Called(task.CampaignID)
	return args.Error(0)
}

// Permissive returns a Recorder and Revalidator that accept any call.
func Permissive() (*Recorder, *Revalidator) {
	recorder := new(Recorder)
	recorder.On("Record", mock.Anything).Return()
	revalidator := new(Revalidator)
	revalidator.On("RevalidatePath", mock.Anything).Return()
	revalidator.On("RevalidateTag", mock.Anything).Return()
	return recorder, revalidator
}
