package inmemdb

import (
	"sync"

	"github.com/campusdesk/portal/core/academic"
	"github.com/campusdesk/portal/core/progress"
	"github.com/campusdesk/portal/core/user"
)

type progressKey struct {
	staffID   string
	subjectID string
}

// DB is an in-memory store honouring the relations of the SQL schema:
// deleting a user or subject drops its assignments and detaches its progress.
type DB struct {
	mu          sync.RWMutex
	users       map[string]*user.User
	subjects    map[string]*academic.Subject
	assignments map[string]*academic.Assignment
	progress    []*progress.Submission
}

func Open() *DB {
	db := &DB{}
	db.Reset()
	return db
}

// Reset empties all tables.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = make(map[string]*user.User)
	db.subjects = make(map[string]*academic.Subject)
	db.assignments = make(map[string]*academic.Assignment)
	db.progress = nil
}

func (db *DB) findProgress(key progressKey) *progress.Submission {
	for _, sub := range db.progress {
		if sub.StaffID == key.staffID && sub.SubjectID == key.subjectID {
			return sub
		}
	}
	return nil
}

// must be called with db.mu held
func (db *DB) deleteUser(id string) bool {
	if _, ok := db.users[id]; !ok {
		return false
	}
	delete(db.users, id)
	for aid, asg := range db.assignments {
		if asg.StaffID == id {
			delete(db.assignments, aid)
		}
	}
	for _, sub := range db.progress {
		if sub.StaffID == id {
			sub.StaffID = ""
		}
	}
	return true
}

// must be called with db.mu held
func (db *DB) deleteSubject(id string) bool {
	if _, ok := db.subjects[id]; !ok {
		return false
	}
	delete(db.subjects, id)
	for aid, asg := range db.assignments {
		if asg.SubjectID == id {
			delete(db.assignments, aid)
		}
	}
	for _, sub := range db.progress {
		if sub.SubjectID == id {
			sub.SubjectID = ""
		}
	}
	return true
}
