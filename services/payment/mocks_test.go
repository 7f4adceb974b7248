package payment

import (
	"context"
	"net/http"
	"sync"
	"time"

	"meddirect/models"
)

// memAppointmentRepo is an in-memory AppointmentRepository for tests.
type memAppointmentRepo struct {
	mu            sync.Mutex
	appointments  map[string]*models.Appointment
	markPaidCalls int
}

func newMemAppointmentRepo(appts ...*models.Appointment) *memAppointmentRepo {
	repo := &memAppointmentRepo{appointments: make(map[string]*models.Appointment)}
	for _, a := range appts {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (r *memAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *appt
	return &cp, nil
}

func (r *memAppointmentRepo) Create(appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[appt.ID] = appt
	return nil
}

func (r *memAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) MarkPaid(id, method, paymentID string, data map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markPaidCalls++
	appt, ok := r.appointments[id]
	if !ok {
		return nil
	}
	appt.Payment = true
	appt.PaymentMethod = method
	appt.PaymentID = paymentID
	appt.PaymentData = data
	appt.UpdatedAt = time.Now()
	return nil
}

func (r *memAppointmentRepo) SetPaymentMethod(id, method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appt, ok := r.appointments[id]; ok {
		appt.PaymentMethod = method
		appt.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memAppointmentRepo) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appt, ok := r.appointments[id]; ok {
		appt.Cancelled = true
	}
	return nil
}

func (r *memAppointmentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, id)
	return nil
}

// memDoctorRepo is an in-memory DoctorRepository for tests.
type memDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func newMemDoctorRepo(docs ...*models.Doctor) *memDoctorRepo {
	repo := &memDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, d := range docs {
		repo.doctors[d.ID] = d
	}
	return repo
}

func (r *memDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	doc, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (r *memDoctorRepo) GetAll() ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDoctorRepo) ListBySpecialization(specialization string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		if d.Specialization == specialization {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memDoctorRepo) ListByHospital(hospitalID string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		if d.HospitalID == hospitalID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memDoctorRepo) Create(doc *models.Doctor) error {
	r.doctors[doc.ID] = doc
	return nil
}

func (r *memDoctorRepo) Update(doc *models.Doctor) error {
	r.doctors[doc.ID] = doc
	return nil
}

func (r *memDoctorRepo) Delete(id string) error {
	delete(r.doctors, id)
	return nil
}

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) SetTokenHash(id, tokenHash string) error {
	if u, ok := r.users[id]; ok {
		u.TokenHash = tokenHash
	}
	return nil
}

// memEnqueuer records enqueued emails.
type memEnqueuer struct {
	mu       sync.Mutex
	payloads []models.EmailPayload
}

func (e *memEnqueuer) EnqueueEmail(payload models.EmailPayload, _ time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.payloads = append(e.payloads, payload)
	return nil
}

// fakeAdapter is a scriptable GatewayAdapter.
type fakeAdapter struct {
	name         string
	session      *models.GatewaySession
	createErr    error
	confirmID    string
	confirmData  map[string]string
	confirmErr   error
	webhookEvent *models.WebhookEvent
	webhookErr   error
	confirmCalls int
	webhookCalls int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) CreateSession(_ context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &models.GatewaySession{
		Provider:  f.name,
		SessionID: "sess_test",
		Amount:    req.Amount,
		Currency:  req.Currency,
	}, nil
}

func (f *fakeAdapter) VerifyConfirmation(_ context.Context, _ models.ConfirmRequest) (string, map[string]string, error) {
	f.confirmCalls++
	if f.confirmErr != nil {
		return "", nil, f.confirmErr
	}
	return f.confirmID, f.confirmData, nil
}

func (f *fakeAdapter) VerifyWebhook(_ []byte, _ http.Header) (*models.WebhookEvent, error) {
	f.webhookCalls++
	if f.webhookErr != nil {
		return nil, f.webhookErr
	}
	return f.webhookEvent, nil
}

func newTestService(appts *memAppointmentRepo, docs *memDoctorRepo, users *memUserRepo, adapters ...GatewayAdapter) *DefaultPaymentService {
	registry := NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
	}
	return &DefaultPaymentService{
		Appointments: appts,
		Doctors:      docs,
		Users:        users,
		Registry:     registry,
		Resolver:     NewMethodResolver(registry),
		Queue:        &memEnqueuer{},
	}
}
