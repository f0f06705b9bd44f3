package parser

import (
	"strings"

	"github.com/huangsam/awrlens/schema"
)

var mainMetricsColumns = []string{
	"SNAP", "INST", "DUR_M", "END", "OS_CPU", "CPU_PER_S", "H_CPU_PER_S",
	"READ_IOPS", "WRITE_IOPS", "READ_MB_S", "WRITE_MB_S", "COMMITS_S",
}

var topEventsColumns = []string{"SNAP_ID", "WAIT_CLASS", "EVENT_NAME", "PCTDBT", "TOTAL_TIME_S"}

// Wait classes as Oracle spells them, multi-word ones first.
var knownWaitClasses = []string{
	"User I/O", "System I/O", "DB CPU",
	"Administrative", "Application", "Cluster", "Commit", "Concurrency", "Configuration",
	"Idle", "Network", "Other", "Queueing", "Scheduler",
}

// decodeMainMetrics reads the per-snapshot performance table by header name.
// SNAP is required; any other missing column reads as 0.
func (d *decoder) decodeMainMetrics(lines []Line) []schema.PerformanceSample {
	out := []schema.PerformanceSample{}
	header, sep, rows := splitTable(lines)
	if len(rows) == 0 {
		return out
	}
	t := newTable(header, sep, mainMetricsColumns)

	iSnap := t.index("SNAP", "SNAP_ID")
	if iSnap < 0 {
		at := header
		if at.No == 0 {
			at = sep
		}
		d.note(schema.SectionMainMetrics, at, schema.MissingColumnDiag, "no SNAP column in header")
		return out
	}
	iInst := t.index("INST", "INST_ID", "INSTANCE_NUMBER")
	iDur := t.index("DUR_M", "DURATION_M")
	iEnd := t.index("END", "END_TIME")
	iOSCPU := t.index("OS_CPU", "OS_CPU_PCT")
	iCPU := t.index("CPU_PER_S")
	iHostCPU := t.index("H_CPU_PER_S", "HOST_CPU_PER_S")
	iReadIOPS := t.index("READ_IOPS")
	iWriteIOPS := t.index("WRITE_IOPS")
	iReadMB := t.index("READ_MB_S")
	iWriteMB := t.index("WRITE_MB_S")
	iCommits := t.index("COMMITS_S", "COMMITS_PER_S")

	eachRow(d, schema.SectionMainMetrics, rows, func(ln Line) error {
		f, err := t.fields(ln)
		if err != nil {
			return err
		}
		get := func(i int) string {
			if i < 0 {
				return ""
			}
			return f[i]
		}

		var r fieldReader
		s := schema.PerformanceSample{
			SnapID:        r.int64("SNAP", get(iSnap)),
			EndTime:       get(iEnd),
			DurationMin:   r.optFloat("DUR_M", get(iDur)),
			CPUPerSec:     r.optFloat("CPU_PER_S", get(iCPU)),
			HostCPUPerSec: r.optFloat("H_CPU_PER_S", get(iHostCPU)),
			ReadIOPS:      r.optFloat("READ_IOPS", get(iReadIOPS)),
			WriteIOPS:     r.optFloat("WRITE_IOPS", get(iWriteIOPS)),
			ReadMBPerSec:  r.optFloat("READ_MB_S", get(iReadMB)),
			WriteMBPerSec: r.optFloat("WRITE_MB_S", get(iWriteMB)),
			CommitsPerSec: r.optFloat("COMMITS_S", get(iCommits)),
		}
		if v := get(iInst); v != "" {
			s.InstanceNumber = r.int("INST", v)
		}
		if v := get(iOSCPU); v != "" {
			pct := r.float("OS_CPU", v)
			s.OSCPUPct = &pct
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

// decodeTopEvents reads the top timed events. Event names and wait classes contain
// spaces, so the whitespace fallback matches known wait classes.
func (d *decoder) decodeTopEvents(lines []Line) []schema.WaitEventSample {
	out := []schema.WaitEventSample{}
	header, sep, rows := splitTable(lines)
	if len(rows) == 0 {
		return out
	}
	t := newTable(header, sep, topEventsColumns)

	decode := func(ln Line) (schema.WaitEventSample, error) {
		return splitWaitEventRow(ln)
	}
	if t.spanned() {
		iSnap := t.index("SNAP_ID", "SNAP")
		iClass := t.index("WAIT_CLASS", "CLASS")
		iEvent := t.index("EVENT_NAME", "EVENT")
		iPct := t.index("PCTDBT", "PCT_DBT", "%DBT", "PCT_DB_TIME")
		iTime := t.index("TOTAL_TIME_S", "TIME_S", "TOTAL_WAIT_S")
		if iSnap >= 0 && iEvent >= 0 {
			decode = func(ln Line) (schema.WaitEventSample, error) {
				f, err := t.fields(ln)
				if err != nil {
					return schema.WaitEventSample{}, err
				}
				get := func(i int) string {
					if i < 0 {
						return ""
					}
					return f[i]
				}
				var r fieldReader
				s := schema.WaitEventSample{
					SnapID:       r.int64("SNAP_ID", get(iSnap)),
					WaitClass:    get(iClass),
					EventName:    get(iEvent),
					PctDBTime:    r.optFloat("PCTDBT", get(iPct)),
					TotalWaitSec: r.optFloat("TOTAL_TIME_S", get(iTime)),
				}
				return s, r.err
			}
		}
	}

	eachRow(d, schema.SectionTopEvents, rows, func(ln Line) error {
		s, err := decode(ln)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out
}

// splitWaitEventRow parses "SNAP CLASS... EVENT... PCT TIME" on whitespace.
func splitWaitEventRow(ln Line) (schema.WaitEventSample, error) {
	f := strings.Fields(ln.Text)
	if len(f) < 5 {
		return schema.WaitEventSample{}, fieldCountError("at least 5", len(f))
	}
	n := len(f)
	var r fieldReader
	s := schema.WaitEventSample{
		SnapID:       r.int64("SNAP_ID", f[0]),
		PctDBTime:    r.float("PCTDBT", f[n-2]),
		TotalWaitSec: r.float("TOTAL_TIME_S", f[n-1]),
	}
	if r.err != nil {
		return schema.WaitEventSample{}, r.err
	}

	middle := f[1 : n-2]
	classLen := 1
	for _, wc := range knownWaitClasses {
		words := strings.Fields(wc)
		if len(words) < len(middle) && strings.EqualFold(strings.Join(middle[:len(words)], " "), wc) {
			classLen = len(words)
			break
		}
	}
	s.WaitClass = strings.Join(middle[:classLen], " ")
	s.EventName = strings.Join(middle[classLen:], " ")
	return s, nil
}
