package queue

import (
	"encoding/json"
	"fmt"
)

const (
	TaskConfirmEmail   = "confirm_email"
	TaskPasswordReset  = "password_reset"
	TaskBirthdayDigest = "birthday_digest"
)

// Task is a mail delivery intent carried over the redis stream.
// Password holds the plaintext one-time password for password_reset
// tasks; it exists only in flight and is never persisted.
type Task struct {
	Type     string `json:"type"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Values flattens the task into redis stream fields.
func (t Task) Values() map[string]any {
	values := map[string]any{
		"type":  t.Type,
		"email": t.Email,
	}
	if t.Username != "" {
		values["username"] = t.Username
	}
	if t.Password != "" {
		values["password"] = t.Password
	}
	if t.Body != "" {
		values["body"] = t.Body
	}
	return values
}

func TaskFromValues(values map[string]any) (Task, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return Task{}, fmt.Errorf("encode values: %w", err)
	}
	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return Task{}, fmt.Errorf("decode task: %w", err)
	}
	if task.Type == "" {
		return Task{}, fmt.Errorf("task missing type")
	}
	return task, nil
}
