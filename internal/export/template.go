package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/xuri/excelize/v2"
)

const (
	// TemplateFileName is the default name of the blank import workbook.
	TemplateFileName = "template_importacao.xlsx"

	SheetTemplateProjects = "Template_Projetos"
	SheetTemplateRoster   = "Template_Rainbow"
)

// TemplateProjectHeaders are the columns of the project import sheet.
var TemplateProjectHeaders = []string{
	"ID", "Nome", "Crítico", "Consultor", "Progresso",
	"Data Início", "Data Estimada", "Data Conclusão", "Agenda do Dia",
	"Fábrica", "Pedido", "Contratada", "ID Contratada", "Área",
	"Implantador", "Segurança", "Efetivo", "TST", "TS CMPC", "Criticidades",
	"Liberação Início Atividade", "Liberação PT", "Liberação Prevencionista",
	"Liberação Supervisor", "Liberação Operador Área", "Liberação TS",
	"Liberação Final Atividade",
}

// TemplateRosterHeaders are the columns of the roster import sheet.
var TemplateRosterHeaders = []string{"Nome Fantasia", "Funcionário"}

var clearanceColumns = map[string]domain.Checkpoint{
	"Liberação Início Atividade": domain.CheckpointStart,
	"Liberação PT":               domain.CheckpointPT,
	"Liberação Prevencionista":   domain.CheckpointPreventionist,
	"Liberação Supervisor":       domain.CheckpointSupervisor,
	"Liberação Operador Área":    domain.CheckpointAreaOperator,
	"Liberação TS":               domain.CheckpointTS,
	"Liberação Final Atividade":  domain.CheckpointEnd,
}

// WriteTemplate writes the blank import workbook: header rows only.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTemplateProjects); err != nil {
		return fmt.Errorf("naming template sheet: %w", err)
	}
	if err := writeHeader(f, SheetTemplateProjects, TemplateProjectHeaders); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetTemplateRoster); err != nil {
		return fmt.Errorf("creating roster sheet: %w", err)
	}
	if err := writeHeader(f, SheetTemplateRoster, TemplateRosterHeaders); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// ReadTemplate parses a filled-in import workbook into a snapshot. Dates are
// read in loc; the agenda column becomes an agenda entry set at now. Rows
// without a name are skipped. Sheets that are missing yield empty
// collections.
func ReadTemplate(r io.Reader, now time.Time, loc *time.Location) (*importer.Snapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	snap := &importer.Snapshot{}

	if rows, err := f.GetRows(SheetTemplateProjects); err == nil {
		for _, rec := range records(rows) {
			if rec["Nome"] == "" {
				snap.Skipped++
				continue
			}
			snap.Projects = append(snap.Projects, templateProject(rec, now, loc))
		}
	}

	if rows, err := f.GetRows(SheetTemplateRoster); err == nil {
		for _, rec := range records(rows) {
			if rec["Nome Fantasia"] == "" && rec["Funcionário"] == "" {
				continue
			}
			snap.Roster = append(snap.Roster, importer.StoredRosterEntry{
				NomeFantasia: importer.FlexString(rec["Nome Fantasia"]),
				Funcionario:  importer.FlexString(rec["Funcionário"]),
			})
		}
	}

	return snap, nil
}

func templateProject(rec map[string]string, now time.Time, loc *time.Location) importer.StoredProject {
	sp := importer.StoredProject{
		ID:                      importer.FlexString(rec["ID"]),
		Name:                    importer.FlexString(rec["Nome"]),
		Critical:                importer.FlexBool(strings.EqualFold(rec["Crítico"], "Sim")),
		Requester:               importer.FlexString(rec["Consultor"]),
		StartDate:               cellTime(rec["Data Início"], loc),
		EstimatedCompletionDate: cellTime(rec["Data Estimada"], loc),
		CompletionDate:          cellTime(rec["Data Conclusão"], loc),
		CreatedAt:               importer.TimestampAt(now),
		Factory:                 importer.FlexString(rec["Fábrica"]),
		OrderNumber:             importer.FlexString(rec["Pedido"]),
		Contractor:              importer.FlexString(rec["Contratada"]),
		ContractorID:            importer.FlexString(rec["ID Contratada"]),
		Area:                    importer.FlexString(rec["Área"]),
		Leader:                  splitList(rec["Implantador"]),
		Safety:                  splitList(rec["Segurança"]),
		Personnel:               splitList(rec["Efetivo"]),
		TST:                     splitList(rec["TST"]),
		TSCMPC:                  splitList(rec["TS CMPC"]),
		CriticalityIDs:          splitList(rec["Criticidades"]),
		Clearances:              map[string]importer.Timestamp{},
	}

	sp.Progress = cellProgress(rec["Progresso"])

	if agenda := cellTime(rec["Agenda do Dia"], loc); agenda.Valid {
		sp.AgendaHistory = importer.ListOf([]importer.StoredAgenda{
			{Date: agenda, SetAt: importer.TimestampAt(now)},
		})
	}

	for col, cp := range clearanceColumns {
		if ts := cellTime(rec[col], loc); ts.Valid {
			sp.Clearances[string(cp)] = ts
		}
	}
	return sp
}

// records pairs each data row with the header row.
func records(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[strings.TrimSpace(h)] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, rec)
	}
	return out
}

// cellTime reads a dd/MM/yyyy[ HH:mm] cell or an Excel date serial.
// cellProgress reads "45%", "45" or "45.5" rounded half away from zero.
// Anything else is 0.
func cellProgress(s string) importer.FlexInt {
	n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return importer.FlexInt(math.Round(n))
}

func cellTime(s string, loc *time.Location) importer.Timestamp {
	if s == "" {
		return importer.Timestamp{}
	}
	if t, ok := ParseDateTime(s, loc); ok {
		return importer.TimestampAt(t)
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			y, m, d := t.Date()
			hh, mm, ss := t.Clock()
			return importer.TimestampAt(time.Date(y, m, d, hh, mm, ss, 0, locOrLocal(loc)))
		}
	}
	return importer.Timestamp{Malformed: true}
}

func splitList(s string) importer.FlexStrings {
	out := importer.FlexStrings{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
