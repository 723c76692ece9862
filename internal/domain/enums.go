package domain

import "strings"

// Status is the derived lifecycle label of a project. It is never stored;
// the tracking package computes it from progress and dates.
type Status string

const (
	StatusPlanned    Status = "Planejado"
	StatusNotStarted Status = "Não Iniciado"
	StatusInProgress Status = "Em Andamento"
	StatusCompleted  Status = "Concluído"
	StatusOverdue    Status = "Atrasado"
)

// Statuses lists every status in dashboard display order.
var Statuses = []Status{
	StatusPlanned,
	StatusNotStarted,
	StatusInProgress,
	StatusOverdue,
	StatusCompleted,
}

// ParseStatus resolves a status label case-insensitively.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Checkpoint names a safety clearance step of an activity.
type Checkpoint string

const (
	CheckpointStart         Checkpoint = "INÍCIO da ATIVIDADE"
	CheckpointPT            Checkpoint = "PT"
	CheckpointPreventionist Checkpoint = "PREVENCIONISTA"
	CheckpointSupervisor    Checkpoint = "SUPERVISOR"
	CheckpointAreaOperator  Checkpoint = "OPERADOR DE ÁREA"
	CheckpointTS            Checkpoint = "TS"
	CheckpointEnd           Checkpoint = "FINAL DA ATIVIDADE"
)

// Checkpoints is the fixed clearance sequence in display order.
var Checkpoints = []Checkpoint{
	CheckpointStart,
	CheckpointPT,
	CheckpointPreventionist,
	CheckpointSupervisor,
	CheckpointAreaOperator,
	CheckpointTS,
	CheckpointEnd,
}

// ParseCheckpoint resolves a checkpoint name. Matching is case-insensitive
// so "início da atividade" and "INÍCIO da ATIVIDADE" are the same key.
func ParseCheckpoint(s string) (Checkpoint, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Checkpoints {
		if string(c) == s || strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "gerente"
	RoleViewer  UserRole = "visualizador"
	RoleTS      UserRole = "ts"
	RoleFast    UserRole = "user_fast"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[UserRole]bool{
	RoleAdmin: true, RoleManager: true, RoleViewer: true,
	RoleTS: true, RoleFast: true,
}
