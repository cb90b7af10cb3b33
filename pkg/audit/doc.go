// Package audit records inventory writes as RFC5424 syslog lines.
//
// # Event Types
//
//   - ObjectEvent: an object was created
//   - RelationshipEvent: a child was linked under a parent
//   - SnapshotEvent: a snapshot was exported or imported
//
// # Usage
//
//	audit.Log(audit.ObjectEvent{
//	    Action:    audit.ActionCreate,
//	    ObjectID:  id,
//	    Serial:    "S1",
//	    RequestID: requestID,
//	    Success:   true,
//	})
//
// Lines go to stdout. When AUDIT_DATABASE_URL is set they are also
// persisted to the audit_messages table.
package audit
