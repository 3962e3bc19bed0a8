package expr

// Var is `$name`: a scope binding lookup by literal name.
type Var struct{ ID string }

func (Var) exprNode() {}

func (v Var) Equal(other Expr) bool { o, ok := other.(Var); return ok && o.ID == v.ID }
func (v Var) Hash() uint64          { return hashString(hashCombine(fnvOffset, tagVar), v.ID) }
func (v Var) String() string        { return "$" + v.ID }

// VarExpr is `${expr}`: a scope binding lookup by computed name.
type VarExpr struct{ Expr Expr }

func (VarExpr) exprNode() {}

func (v VarExpr) Equal(other Expr) bool {
	o, ok := other.(VarExpr)

	return ok && exprEqual(v.Expr, o.Expr)
}

func (v VarExpr) Hash() uint64   { return hashExpr(hashCombine(fnvOffset, tagVarExpr), v.Expr) }
func (v VarExpr) String() string { return "${" + v.Expr.String() + "}" }

// Env is `env:name`: a process environment variable lookup by literal
// name.
type Env struct{ ID string }

func (Env) exprNode() {}

func (e Env) Equal(other Expr) bool { o, ok := other.(Env); return ok && o.ID == e.ID }
func (e Env) Hash() uint64          { return hashString(hashCombine(fnvOffset, tagEnv), e.ID) }
func (e Env) String() string        { return "env:" + e.ID }

// EnvExpr is `env:(expr)`: a process environment variable lookup by
// computed name.
type EnvExpr struct{ Expr Expr }

func (EnvExpr) exprNode() {}

func (e EnvExpr) Equal(other Expr) bool {
	o, ok := other.(EnvExpr)

	return ok && exprEqual(e.Expr, o.Expr)
}

func (e EnvExpr) Hash() uint64   { return hashExpr(hashCombine(fnvOffset, tagEnvExpr), e.Expr) }
func (e EnvExpr) String() string { return "env:(" + e.Expr.String() + ")" }
