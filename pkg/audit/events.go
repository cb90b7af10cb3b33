package audit

import (
	"fmt"
	"strconv"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func clientData(requestID, clientIP string) map[string]string {
	client := map[string]string{}
	if requestID != "" {
		client["request"] = requestID
	}
	if clientIP != "" {
		client["ip"] = clientIP
	}
	return client
}

// ObjectEvent records an object write
type ObjectEvent struct {
	Action       Action
	ObjectID     int64
	Serial       string
	Name         string
	RequestID    string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e ObjectEvent) MessageID() string {
	return "object-" + e.Action.String()
}

func (e ObjectEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("object %d (%s) %sd", e.ObjectID, e.Serial, e.Action)
	}
	msg := fmt.Sprintf("failed to %s object %s", e.Action, e.Serial)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ObjectEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ObjectEvent) Facility() int {
	return FacilityLocal0
}

func (e ObjectEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDObject: {
			"serial": e.Serial,
			"name":   e.Name,
		},
		SDIDAction: {
			"operation": e.Action.String(),
			"result":    result(e.Success),
		},
	}
	if e.Success {
		sd[SDIDObject]["id"] = strconv.FormatInt(e.ObjectID, 10)
	}
	if client := clientData(e.RequestID, e.ClientIP); len(client) > 0 {
		sd[SDIDClient] = client
	}
	return sd
}

// RelationshipEvent records a child being linked under a parent
type RelationshipEvent struct {
	ParentID  int64
	ChildID   int64
	RequestID string
	ClientIP  string
}

func (e RelationshipEvent) MessageID() string {
	return "relationship-create"
}

func (e RelationshipEvent) Message() string {
	return fmt.Sprintf("object %d linked under object %d", e.ChildID, e.ParentID)
}

func (e RelationshipEvent) Severity() Severity {
	return SeverityInfo
}

func (e RelationshipEvent) Facility() int {
	return FacilityLocal0
}

func (e RelationshipEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDRelationship: {
			"parent": strconv.FormatInt(e.ParentID, 10),
			"child":  strconv.FormatInt(e.ChildID, 10),
		},
		SDIDAction: {
			"operation": ActionCreate.String(),
			"result":    result(true),
		},
	}
	if client := clientData(e.RequestID, e.ClientIP); len(client) > 0 {
		sd[SDIDClient] = client
	}
	return sd
}

// SnapshotEvent records a snapshot export or import
type SnapshotEvent struct {
	Action        Action
	Path          string
	Objects       int
	Relationships int
	Success       bool
	ErrorMessage  string
}

func (e SnapshotEvent) MessageID() string {
	return "snapshot-" + e.Action.String()
}

func (e SnapshotEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%sed %d objects and %d relationships via %s",
			e.Action, e.Objects, e.Relationships, e.Path)
	}
	msg := fmt.Sprintf("failed to %s %s", e.Action, e.Path)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e SnapshotEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityError
}

func (e SnapshotEvent) Facility() int {
	return FacilityUser
}

func (e SnapshotEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSnapshot: {
			"path":          e.Path,
			"objects":       strconv.Itoa(e.Objects),
			"relationships": strconv.Itoa(e.Relationships),
		},
		SDIDAction: {
			"operation": e.Action.String(),
			"result":    result(e.Success),
		},
	}
}
