package email

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/problemhub/internal/hub_errors"
	"gopkg.in/gomail.v2"
)

type EmailPurpose string
type EmailBodyType string

const (
	KeyEmailSender                            = "SENDER_EMAIL"
	KeyEmailSenderPassword                    = "SENDER_EMAIL_PASSWORD"
	KeyEmailSMTPServer                        = "SMTP_HOST"
	KeyEmailSMTPPort                          = "SMTP_PORT"
	DefaultEmailSMTPServer                    = "smtp.gmail.com"
	DefaultEmailSMTPPort                      = 587
	KeyEmailFrom                              = "From"
	KeyEmailTo                                = "To"
	KeyEmailSubject                           = "Subject"
	KeyEmailBodyPlain           EmailBodyType = "text/plain"
	PurposeEmailOTP             EmailPurpose  = "otp"
	defaultEmailChannelCapacity               = 100
)

// Dialer delivers composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailRequest struct {
	To       []string
	Subject  string
	Body     string
	BodyType EmailBodyType
	Purpose  EmailPurpose
}

type emailJob struct {
	EmailRequest
	from   string
	result chan error
}

// EmailService sends mails through a fixed number of workers. Callers block
// until their mail is delivered or their context is done.
type EmailService struct {
	From    string
	Dialer  Dialer
	Workers int

	jobs    chan emailJob
	quit    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
	logger  *logrus.Entry
}

// NewSMTPDialer returns a gomail dialer for the given smtp server.
func NewSMTPDialer(host string, port int, user, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, password)
}

func (e *EmailService) Start() {
	if e.Dialer == nil {
		panic("email service expects non-nil dialer")
	}
	if e.Workers <= 0 {
		e.Workers = 1
	}

	e.logger = logrus.WithField("from", "email service")
	e.jobs = make(chan emailJob, defaultEmailChannelCapacity)
	e.quit = make(chan struct{})

	for i := range e.Workers {
		e.wg.Add(1)
		go e.worker(i)
	}

	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	e.logger.Infof("started %d email workers", e.Workers)
}

// Stop waits for the workers to finish the mail they are sending.
// Queued mails are dropped and their senders are told the service stopped.
func (e *EmailService) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.quit)
	e.mu.Unlock()

	e.wg.Wait()
	e.logger.Info("email workers stopped")
}

func (e *EmailService) worker(id int) {
	defer e.wg.Done()
	workerLogger := e.logger.WithField("worker", id)
	for {
		select {
		case <-e.quit:
			e.drain()
			return
		case job := <-e.jobs:
			err := e.deliver(job)
			if err != nil {
				workerLogger.WithField("purpose", job.Purpose).Errorf("cannot deliver mail, %v", err)
			}
			job.result <- err
		}
	}
}

func (e *EmailService) drain() {
	for {
		select {
		case job := <-e.jobs:
			job.result <- hub_errors.ErrEmailServiceStopped
		default:
			return
		}
	}
}

func (e *EmailService) deliver(job emailJob) error {
	m := gomail.NewMessage()
	m.SetHeader(KeyEmailFrom, job.from)
	m.SetHeader(KeyEmailTo, job.To...)
	m.SetHeader(KeyEmailSubject, job.Subject)
	m.SetBody(string(job.BodyType), job.Body)

	if err := e.Dialer.DialAndSend(m); err != nil {
		return errors.Join(hub_errors.ErrEmailDelivery, hub_errors.WrapIPCError(err))
	}
	return nil
}

// Send queues the mail and waits for a worker to deliver it.
func (e *EmailService) Send(ctx context.Context, req EmailRequest) error {
	if e.From == "" {
		logrus.Error("sender email is not configured")
		return hub_errors.ErrEmailServiceStopped
	}
	if len(req.To) == 0 {
		return fmt.Errorf("%w, mail has no recipients", hub_errors.ErrInvalidRequest)
	}
	if req.BodyType == "" {
		req.BodyType = KeyEmailBodyPlain
	}

	e.mu.RLock()
	running := e.running
	e.mu.RUnlock()
	if !running {
		return hub_errors.ErrEmailServiceStopped
	}

	job := emailJob{
		EmailRequest: req,
		from:         e.From,
		// buffered so a worker never blocks on a sender that gave up
		result: make(chan error, 1),
	}

	// when all the workers are dead, it shouldn't block indefinetely
	select {
	case <-ctx.Done():
		e.logger.Errorf("email job cancelled: %v", ctx.Err())
		return errors.Join(hub_errors.ErrEmailServiceStopped, ctx.Err())
	case <-e.quit:
		return hub_errors.ErrEmailServiceStopped
	case e.jobs <- job:
	}

	select {
	case <-ctx.Done():
		e.logger.Errorf("gave up waiting for email delivery: %v", ctx.Err())
		return errors.Join(hub_errors.ErrEmailDelivery, ctx.Err())
	case err := <-job.result:
		return err
	}
}

// SendOTP mails a one time code to the given address.
func (e *EmailService) SendOTP(ctx context.Context, to string, code string) error {
	err := e.Send(ctx, EmailRequest{
		To:       []string{to},
		Subject:  "Your OTP Code",
		Body:     fmt.Sprintf("Your OTP code is: %s\n\nThe code can be used only once.", code),
		BodyType: KeyEmailBodyPlain,
		Purpose:  PurposeEmailOTP,
	})
	if err != nil {
		return err
	}
	e.logger.WithField("purpose", PurposeEmailOTP).Debugf("sent otp to %s", to)
	return nil
}
