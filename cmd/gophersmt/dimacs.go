package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/crillab/gophersmt/literal"
	"github.com/crillab/gophersmt/term"
	"github.com/pkg/errors"
)

// problem is a parsed DIMACS CNF file: one boolean term per declared
// variable, plus the clauses read over them, ready to hand to smt.Solver.
type problem struct {
	store   *term.Store
	vars    []*term.Term // index i holds the term for DIMACS variable i+1
	clauses [][]literal.Literal
}

func (p *problem) varTerm(v int) *term.Term { return p.vars[v-1] }

func (p *problem) literalFor(dimacsLit int) literal.Literal {
	t := p.varTerm(absInt(dimacsLit))
	if dimacsLit < 0 {
		return literal.Neg(t)
	}
	return literal.Pos(t)
}

// loadDIMACS reads a DIMACS CNF file from r, declaring one boolean term
// per variable and one clause (over literal.Literal atoms) per
// 0-terminated DIMACS clause.
func loadDIMACS(r io.Reader) (*problem, error) {
	br := bufio.NewReader(r)
	p := &problem{store: term.NewStore()}

	b, err := br.ReadByte()
	for err == nil {
		switch b {
		case 'c':
			b, err = skipLine(br)
		case 'p':
			nbVars, herr := parseHeader(br)
			if herr != nil {
				return nil, errors.Wrap(herr, "cannot parse CNF header")
			}
			p.vars = make([]*term.Term, nbVars)
			for i := range p.vars {
				p.vars[i] = p.store.Const(fmt.Sprintf("x%d", i+1), term.BoolType)
			}
			b, err = br.ReadByte()
		default:
			var ints []int
			ints, b, err = readClause(&b, br, len(p.vars))
			if err != nil && err != io.EOF {
				return nil, errors.Wrap(err, "cannot parse clause")
			}
			if len(ints) > 0 {
				clause := make([]literal.Literal, len(ints))
				for i, v := range ints {
					clause[i] = p.literalFor(v)
				}
				p.clauses = append(p.clauses, clause)
			}
		}
	}
	if err != io.EOF {
		return nil, err
	}
	return p, nil
}

func skipLine(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil || b == '\n' {
			return b, err
		}
	}
}

func parseHeader(r *bufio.Reader) (nbVars int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, errors.Errorf("invalid header %q", line)
	}
	return strconv.Atoi(fields[1])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads one signed DIMACS literal, skipping leading whitespace.
// b holds the last byte read; it is updated in place.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err != nil {
		return 0, err
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("%q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	return res * neg, err
}

// readClause reads DIMACS literals up to the terminating 0. Returns the
// next unread byte and io.EOF once the file is exhausted.
func readClause(b *byte, r *bufio.Reader, nbVars int) ([]int, byte, error) {
	var lits []int
	for {
		val, err := readInt(b, r)
		if err == io.EOF {
			if len(lits) != 0 {
				return nil, *b, errors.New("unfinished clause at EOF")
			}
			return nil, *b, io.EOF
		}
		if err != nil {
			return nil, *b, err
		}
		if val == 0 {
			nb, nerr := r.ReadByte()
			return lits, nb, nerr
		}
		if absInt(val) > nbVars {
			return nil, *b, errors.Errorf("literal %d refers to an unallocated variable", val)
		}
		lits = append(lits, val)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
