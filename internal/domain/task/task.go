package task

import (
	"encoding/json"
	"fmt"
)

// Stream message fields.
const (
	FieldType = "task_type"
	FieldData = "task_data"
)

// Task is a unit of background work that can be put on a queue stream.
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task interface{}) ([]byte, error) {
	return json.Marshal(task)
}

func UnmarshalTask[T Task](task []byte) (T, error) {
	var t T
	err := json.Unmarshal(task, &t)
	return t, err
}

// Fields encodes a task as stream message values.
func Fields(t Task) (map[string]interface{}, error) {
	value, err := t.TaskValue()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize task: %w", err)
	}
	return map[string]interface{}{
		FieldType: t.TaskType(),
		FieldData: string(value),
	}, nil
}

// Decode reads a task of type T back from stream message values. It
// fails when the message holds another task type.
func Decode[T Task](values map[string]interface{}) (T, error) {
	var zero T

	taskType, _ := values[FieldType].(string)
	data, ok := values[FieldData].(string)
	if !ok {
		return zero, fmt.Errorf("message has no %s field", FieldData)
	}

	t, err := UnmarshalTask[T]([]byte(data))
	if err != nil {
		return zero, fmt.Errorf("failed to unmarshal %s task: %w", taskType, err)
	}
	if want := t.TaskType(); taskType != want {
		return zero, fmt.Errorf("message holds %q, expected %q", taskType, want)
	}
	return t, nil
}
