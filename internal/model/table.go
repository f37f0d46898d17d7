package model

// PopART-IBM 年度输出文件的固定指标列
const (
	ColYear            = "Year"
	ColIncidence       = "Incidence"
	ColPrevalence      = "Prevalence"
	ColNumberPositive  = "NumberPositive"
	ColNumberPositiveM = "NumberPositiveM"
	ColNumberPositiveF = "NumberPositiveF"
	ColTotalPopulation = "TotalPopulation"
	ColPopulationM     = "PopulationM"
	ColPopulationF     = "PopulationF"
	ColNDead           = "N_dead"
	ColNDiedFromHIV    = "NDied_from_HIV"
	ColNHIVPosDead     = "NHIV_pos_dead"
	ColNewCases        = "NewCasesThisYear"
)

// RequiredColumns 加载时必须全部存在的列，缺一即 SchemaError
var RequiredColumns = []string{
	ColYear,
	ColIncidence,
	ColPrevalence,
	ColNumberPositive,
	ColNumberPositiveM,
	ColNumberPositiveF,
	ColTotalPopulation,
	ColPopulationM,
	ColPopulationF,
	ColNDead,
	ColNDiedFromHIV,
	ColNHIVPosDead,
	ColNewCases,
}

// Row 一行年度输出：Year 为整数，其余指标列统一按浮点数保存
type Row struct {
	Year   int
	Values map[string]float64
}

// Value 按列名取指标值
func (r Row) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// ResultTable 内存中的模拟结果表。每次文件选择都重新加载，
// 不做缓存；过滤产生的子表与源表共享行数据，双方都不被修改。
type ResultTable struct {
	SourceFile string
	rows       []Row
}

// NewResultTable 从行序列构建结果表（保持原始顺序）
func NewResultTable(sourceFile string, rows []Row) *ResultTable {
	return &ResultTable{SourceFile: sourceFile, rows: rows}
}

// Len 行数
func (t *ResultTable) Len() int {
	return len(t.rows)
}

// Rows 按原始顺序返回全部行（只读使用）
func (t *ResultTable) Rows() []Row {
	return t.rows
}

// Years 按行顺序返回 Year 列
func (t *ResultTable) Years() []int {
	years := make([]int, len(t.rows))
	for i, r := range t.rows {
		years[i] = r.Year
	}
	return years
}

// Column 按行顺序返回指定指标列
func (t *ResultTable) Column(name string) []float64 {
	values := make([]float64, len(t.rows))
	for i, r := range t.rows {
		values[i] = r.Values[name]
	}
	return values
}

// YearRange 闭区间 [From, To]。上下界的钳制（如 1970–2030）
// 由展示层负责，过滤本身只校验 From ≤ To。
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains 年份是否落在区间内
func (r YearRange) Contains(year int) bool {
	return year >= r.From && year <= r.To
}

// Valid 区间是否合法
func (r YearRange) Valid() bool {
	return r.From <= r.To
}

// FilterYears 返回 Year 落在区间内的行构成的子表。
// 保持原始行序和全部列；无命中行时返回空表而非错误。
func (t *ResultTable) FilterYears(r YearRange) (*ResultTable, error) {
	if !r.Valid() {
		return nil, ErrInvalidRange
	}

	filtered := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		if r.Contains(row.Year) {
			filtered = append(filtered, row)
		}
	}
	return &ResultTable{SourceFile: t.SourceFile, rows: filtered}, nil
}
