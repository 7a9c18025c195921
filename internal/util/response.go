package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// ErrorWithFields adds per-field messages, used for validation failures.
func ErrorWithFields(message string, fields map[string]string) Envelope {
	if len(fields) == 0 {
		return Error(message)
	}
	return Envelope{"error": message, "fields": fields}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
