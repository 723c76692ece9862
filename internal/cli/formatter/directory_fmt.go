package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// FormatUserList renders users with their role and contractor scope.
func FormatUserList(users []domain.User, contractors []domain.Contractor) string {
	names := make(map[string]string, len(contractors))
	for _, c := range contractors {
		names[c.ID] = c.Name
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		scope := Dim("all")
		if !u.SeesEverything() {
			labels := make([]string, 0, len(u.ContractorIDs))
			for _, id := range u.ContractorIDs {
				if n, ok := names[id]; ok {
					labels = append(labels, n)
				} else {
					labels = append(labels, id)
				}
			}
			scope = JoinOrDash(labels)
		}
		rows = append(rows, []string{u.Email, OrDash(u.Name), roleLabel(u.Role), scope})
	}
	return RenderBox(fmt.Sprintf("Users (%d)", len(users)),
		RenderTable([]string{"EMAIL", "NAME", "ROLE", "CONTRACTORS"}, rows, 0))
}

func FormatContractorList(contractors []domain.Contractor) string {
	rows := make([][]string, 0, len(contractors))
	for _, c := range contractors {
		rows = append(rows, []string{StyleDim.Render(c.ID), c.Name})
	}
	return RenderBox(fmt.Sprintf("Contractors (%d)", len(contractors)),
		RenderTable([]string{"ID", "NAME"}, rows, 0))
}

// FormatRoster groups roster entries under their trade name.
func FormatRoster(entries []domain.RosterEntry) string {
	if len(entries) == 0 {
		return RenderBox("Roster", Dim("No roster entries."))
	}

	var b strings.Builder
	current := ""
	for i, e := range entries {
		if i == 0 || e.NomeFantasia != current {
			if i > 0 {
				b.WriteString("\n")
			}
			current = e.NomeFantasia
			b.WriteString(Bold(current) + "\n")
		}
		b.WriteString("  " + e.Funcionario + "\n")
	}
	return RenderBox(fmt.Sprintf("Roster (%d)", len(entries)), strings.TrimRight(b.String(), "\n"))
}

func roleLabel(r domain.UserRole) string {
	switch r {
	case domain.RoleAdmin:
		return StyleRed.Render(string(r))
	case domain.RoleManager:
		return StyleYellow.Render(string(r))
	case domain.RoleTS, domain.RoleFast:
		return StyleBlue.Render(string(r))
	default:
		return StyleFg.Render(string(r))
	}
}
