package persistence

import (
	"github.com/limoiie/dofu/command"
	"github.com/limoiie/dofu/dofuerrors"
	"github.com/limoiie/dofu/module"
	"github.com/limoiie/dofu/requirement"
	"github.com/limoiie/dofu/transaction"
)

func packageInstallToWire(r requirement.PackageInstallationRecord) packageInstallWire {
	return packageInstallWire{
		Package:      r.Requirement.Spec.Package,
		Version:      r.Requirement.Spec.Version,
		Command:      r.Requirement.Command,
		Backend:      r.Backend,
		UsedExisting: r.UsedExisting,
	}
}

func packageInstallFromWire(w packageInstallWire) requirement.PackageInstallationRecord {
	return requirement.PackageInstallationRecord{
		Requirement: requirement.NewPackageRequirement(w.Package, w.Version, w.Command, nil),
		Backend:     w.Backend,
		UsedExisting: w.UsedExisting,
	}
}

func gitrepoInstallToWire(r requirement.GitRepoInstallationRecord) gitrepoInstallWire {
	return gitrepoInstallWire{
		URL:          r.Requirement.URL,
		Path:         r.Requirement.Path,
		Branch:       r.Requirement.Branch,
		CommitID:     r.Requirement.CommitID,
		Depth:        r.Requirement.Depth,
		Submodules:   r.Requirement.Submodules,
		UsedExisting: r.UsedExisting,
	}
}

func gitrepoInstallFromWire(w gitrepoInstallWire) requirement.GitRepoInstallationRecord {
	return requirement.GitRepoInstallationRecord{
		Requirement: requirement.GitRepoRequirement{
			URL: w.URL, Path: w.Path, Branch: w.Branch, CommitID: w.CommitID,
			Depth: w.Depth, Submodules: w.Submodules,
		},
		UsedExisting: w.UsedExisting,
	}
}

func commandToWire(c command.UndoableCommand) commandWire {
	w := commandWire{Kind: c.Kind()}
	switch v := c.(type) {
	case *command.Symlink:
		w.Src, w.Dst, w.RealDst = v.Src, v.Dst, v.RealDst
	case *command.Link:
		w.Src, w.Dst, w.RealDst = v.Src, v.Dst, v.RealDst
	case *command.BackupMv:
		w.Path, w.BackupPath = v.Path, v.BackupPath
	case *command.Mkdir:
		w.Path, w.LastExistPath = v.Path, v.LastExistPath
	case *command.Move:
		w.Src, w.Dst, w.RealDst = v.Src, v.Dst, v.RealDst
	case *command.SafeMove:
		w.Src, w.Dst, w.Moved = v.Src, v.Dst, v.Moved
	case *command.AppendLine:
		w.Path, w.Pattern, w.Repl, w.ReplacedLine = v.Path, v.Pattern, v.Repl, v.ReplacedLine
	case *command.AppendEnvVar:
		w.VarName, w.Value, w.Path = v.VarName, v.Value, v.Path
		w.Changed, w.HadPrevious, w.PreviousValue = v.Changed, v.HadPrevious, v.PreviousValue
	case *command.AppendEnvVarPath:
		w.NewPath, w.RcPath = v.NewPath, v.RcPath
		w.Noop, w.ModifiedExisting, w.InsertedNewLine = v.Noop, v.ModifiedExisting, v.InsertedNewLine
		w.LineIndex, w.OriginalLine = v.LineIndex, v.OriginalLine
	case *command.ChSh:
		w.Shell, w.OriginShell = v.Shell, v.OriginShell
	}
	return w
}

func commandFromWire(w commandWire) (command.UndoableCommand, error) {
	switch w.Kind {
	case "symlink":
		return &command.Symlink{Src: w.Src, Dst: w.Dst, RealDst: w.RealDst}, nil
	case "link":
		return &command.Link{Src: w.Src, Dst: w.Dst, RealDst: w.RealDst}, nil
	case "backup_mv":
		return &command.BackupMv{Path: w.Path, BackupPath: w.BackupPath}, nil
	case "mkdir":
		return &command.Mkdir{Path: w.Path, LastExistPath: w.LastExistPath}, nil
	case "move":
		return &command.Move{Src: w.Src, Dst: w.Dst, RealDst: w.RealDst}, nil
	case "safe_move":
		return &command.SafeMove{Src: w.Src, Dst: w.Dst, Moved: w.Moved}, nil
	case "append_line":
		return &command.AppendLine{Path: w.Path, Pattern: w.Pattern, Repl: w.Repl, ReplacedLine: w.ReplacedLine}, nil
	case "append_env_var":
		return &command.AppendEnvVar{
			VarName: w.VarName, Value: w.Value, Path: w.Path,
			Changed: w.Changed, HadPrevious: w.HadPrevious, PreviousValue: w.PreviousValue,
		}, nil
	case "append_env_var_path":
		return &command.AppendEnvVarPath{
			NewPath: w.NewPath, RcPath: w.RcPath,
			Noop: w.Noop, ModifiedExisting: w.ModifiedExisting, InsertedNewLine: w.InsertedNewLine,
			LineIndex: w.LineIndex, OriginalLine: w.OriginalLine,
		}, nil
	case "chsh":
		return &command.ChSh{Shell: w.Shell, OriginShell: w.OriginShell}, nil
	default:
		return nil, dofuerrors.NewInternalInvariantViolation("unknown command kind %q in journal", w.Kind)
	}
}

func transactionToWire(t *transaction.Transaction) transactionWire {
	w := transactionWire{
		CommitID:       t.CommitID,
		Status:         t.Status.String(),
		RollbackCursor: t.RollbackCursor,
	}
	for _, rec := range t.Records {
		w.Records = append(w.Records, commandToWire(rec))
	}
	return w
}

func transactionFromWire(w transactionWire) (*transaction.Transaction, error) {
	t := &transaction.Transaction{
		CommitID:       w.CommitID,
		Status:         transaction.ParseStatus(w.Status),
		RollbackCursor: w.RollbackCursor,
	}
	for _, rw := range w.Records {
		cmd, err := commandFromWire(rw)
		if err != nil {
			return nil, err
		}
		t.Records = append(t.Records, cmd)
	}
	return t, nil
}

func metaToWire(m *module.EquipmentMetaInfo) moduleMetaWire {
	w := moduleMetaWire{ModuleName: m.ModuleName, Status: m.Status.String()}
	for _, p := range m.PackageInstallations {
		w.PackageInstallations = append(w.PackageInstallations, packageInstallToWire(p))
	}
	for _, g := range m.GitRepoInstallations {
		w.GitRepoInstallations = append(w.GitRepoInstallations, gitrepoInstallToWire(g))
	}
	for _, t := range m.Transactions {
		w.Transactions = append(w.Transactions, transactionToWire(t))
	}
	return w
}

func metaFromWire(w moduleMetaWire) (*module.EquipmentMetaInfo, error) {
	m := module.NewEquipmentMetaInfo(w.ModuleName)
	m.Status = module.ParseStatus(w.Status)
	for _, p := range w.PackageInstallations {
		m.PackageInstallations = append(m.PackageInstallations, packageInstallFromWire(p))
	}
	for _, g := range w.GitRepoInstallations {
		m.GitRepoInstallations = append(m.GitRepoInstallations, gitrepoInstallFromWire(g))
	}
	for _, tw := range w.Transactions {
		t, err := transactionFromWire(tw)
		if err != nil {
			return nil, err
		}
		m.Transactions = append(m.Transactions, t)
	}
	return m, nil
}
