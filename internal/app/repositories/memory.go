package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmdelacruz/sis-backend/internal/app/models"
	"github.com/jmdelacruz/sis-backend/internal/pkg/apperrors"
)

// In-memory stores mirror the Postgres repositories' contract, including the
// conflict and not-found sentinels. They back the service and controller
// tests without a database.

// InMemoryUserRepository is a map-backed IUserRepository
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]*models.User // keyed by natural key
	nextID int64
}

// NewInMemoryUserRepository creates an empty in-memory user store
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*models.User), nextID: 1}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

// Create inserts a user, enforcing both uniqueness invariants
func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.users[user.UserID]; ok {
		return apperrors.ErrUserIDExists
	}

	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++
	r.users[user.UserID] = cloneUser(user)
	return nil
}

// GetByUserID retrieves a user by natural key
func (r *InMemoryUserRepository) GetByUserID(_ context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[userID]; ok {
		return cloneUser(user), nil
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByID retrieves a user by storage-assigned id
func (r *InMemoryUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// FindByEmailOrUserID retrieves a user matching either key
func (r *InMemoryUserRepository) FindByEmailOrUserID(_ context.Context, email, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email || user.UserID == userID {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// List returns all users ordered by storage id
func (r *InMemoryUserRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateByUserID applies a partial update keyed by the natural key
func (r *InMemoryUserRepository) UpdateByUserID(_ context.Context, userID string, fields map[string]interface{}) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if err := r.applyUserFields(user, fields); err != nil {
		return nil, err
	}
	return cloneUser(user), nil
}

// UpdateByID applies a partial update keyed by the storage-assigned id
func (r *InMemoryUserRepository) UpdateByID(_ context.Context, id int64, fields map[string]interface{}) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			if err := r.applyUserFields(user, fields); err != nil {
				return nil, err
			}
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *InMemoryUserRepository) applyUserFields(user *models.User, fields map[string]interface{}) error {
	if email, ok := fields["email"].(string); ok {
		for _, other := range r.users {
			if other.UserID != user.UserID && other.Email == email {
				return apperrors.ErrEmailAlreadyExists
			}
		}
	}
	for column, value := range fields {
		switch column {
		case "first_name":
			user.FirstName = value.(string)
		case "middle_name":
			user.MiddleName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "email":
			user.Email = value.(string)
		case "password":
			user.Password = value.(string)
		case "role":
			user.Role = value.(string)
		}
	}
	if len(fields) > 0 {
		user.UpdatedAt = time.Now()
	}
	return nil
}

// DeleteByUserID removes a user by natural key
func (r *InMemoryUserRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

// DeleteByID removes a user by storage-assigned id
func (r *InMemoryUserRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, user := range r.users {
		if user.ID == id {
			delete(r.users, key)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

// Count returns the number of user records
func (r *InMemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// InMemoryStudentRepository is a map-backed IStudentRepository
type InMemoryStudentRepository struct {
	mu       sync.RWMutex
	students map[string]*models.Student // keyed by natural key
	nextID   int64
}

// NewInMemoryStudentRepository creates an empty in-memory student store
func NewInMemoryStudentRepository() *InMemoryStudentRepository {
	return &InMemoryStudentRepository{students: make(map[string]*models.Student), nextID: 1}
}

func cloneStudent(s *models.Student) *models.Student {
	c := *s
	if s.DateOfBirth != nil {
		dob := *s.DateOfBirth
		c.DateOfBirth = &dob
	}
	return &c
}

// Create inserts a student, enforcing natural-key uniqueness
func (r *InMemoryStudentRepository) Create(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.StudentID]; ok {
		return apperrors.ErrStudentIDExists
	}

	now := time.Now()
	student.ID = r.nextID
	student.CreatedAt = now
	student.UpdatedAt = now
	r.nextID++
	r.students[student.StudentID] = cloneStudent(student)
	return nil
}

// GetByStudentID retrieves a student by natural key
func (r *InMemoryStudentRepository) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if student, ok := r.students[studentID]; ok {
		return cloneStudent(student), nil
	}
	return nil, apperrors.ErrStudentNotFound
}

// GetByID retrieves a student by storage-assigned id
func (r *InMemoryStudentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, student := range r.students {
		if student.ID == id {
			return cloneStudent(student), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// StudentIDExists checks if a student ID is already taken
func (r *InMemoryStudentRepository) StudentIDExists(_ context.Context, studentID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.students[studentID]
	return ok, nil
}

// List returns all students ordered by storage id
func (r *InMemoryStudentRepository) List(_ context.Context) ([]*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	students := make([]*models.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, cloneStudent(student))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

// UpdateByStudentID applies a partial update keyed by the natural key
func (r *InMemoryStudentRepository) UpdateByStudentID(_ context.Context, studentID string, fields map[string]interface{}) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	student, ok := r.students[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	for column, value := range fields {
		switch column {
		case "first_name":
			student.FirstName = value.(string)
		case "middle_name":
			student.MiddleName = value.(string)
		case "last_name":
			student.LastName = value.(string)
		case "program":
			student.Program = value.(string)
		case "year":
			student.Year = value.(int)
		case "section":
			student.Section = value.(string)
		case "date_of_birth":
			dob := value.(time.Time)
			student.DateOfBirth = &dob
		case "contact_number":
			student.ContactNumber = value.(string)
		case "address":
			student.Address = value.(string)
		}
	}
	if len(fields) > 0 {
		student.UpdatedAt = time.Now()
	}
	return cloneStudent(student), nil
}

// DeleteByStudentID removes a student by natural key
func (r *InMemoryStudentRepository) DeleteByStudentID(_ context.Context, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, studentID)
	return nil
}
