package domain

// Contractor is a company that executes projects.
type Contractor struct {
	ID   string
	Name string
}

// RosterEntry links a contractor's trade name to one of its employees.
type RosterEntry struct {
	ID           string
	NomeFantasia string
	Funcionario  string
}
