package scheduler

import "testing"

func TestFollowUpPayloadRoundTrip(t *testing.T) {
	in := FollowUpPayload{
		SessionID:   "whatsapp_5511999999999",
		PhoneNumber: "5511999999999",
		FirstName:   "João",
	}

	task, err := NewFollowUpTask(in)
	if err != nil {
		t.Fatalf("NewFollowUpTask: %v", err)
	}
	if task.Type() != TaskConversationFollowUp {
		t.Fatalf("task type = %q", task.Type())
	}

	out, err := ParseFollowUpPayload(task)
	if err != nil {
		t.Fatalf("ParseFollowUpPayload: %v", err)
	}
	if out != in {
		t.Fatalf("payload = %+v, want %+v", out, in)
	}
}
