package gate

// ArgCountAny marks a gate that accepts any number of parens
// arguments (coordinate data on DETECTOR/QUBIT_COORDS/SHIFT_COORDS).
const ArgCountAny = -1

// ArgCountZeroOrOne marks a gate whose parens argument is optional: no
// argument means a noiseless result, one argument is the probability
// of a flipped (noisy) result.
const ArgCountZeroOrOne = -2

// Info describes one entry in the gate vocabulary.
type Info struct {
	Name          string
	ID            Type
	BestInverse   Type // NotAGate if the gate has no natural inverse
	ArgCount      int  // >=0, or one of the ArgCount* sentinels
	Flags         Flags
	Category      string
}

var byType = map[Type]Info{}
var byName = map[string]Type{}

func reg(info Info) {
	byType[info.ID] = info
	byName[info.Name] = info.ID
}

// Lookup returns the Info for a gate, and whether it was found.
func Lookup(t Type) (Info, bool) {
	info, ok := byType[t]
	return info, ok
}

// ByName resolves a canonical (case-sensitive) gate name to its Type.
func ByName(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}

func init() {
	addAnnotations()
	addControlFlow()
	addCollapsing()
	addControlled()
	addHadamard()
	addNoisy()
	addHeralded()
	addPauli()
	addPeriod3()
	addPeriod4()
	addPauliProduct()
	addSwaps()
	addPairMeasure()
}

func addAnnotations() {
	reg(Info{Name: "DETECTOR", ID: Detector, BestInverse: NotAGate, ArgCount: ArgCountAny,
		Flags: OnlyTargetsMeasurementRecord | HasNoEffectOnQubits, Category: "Annotations"})
	reg(Info{Name: "OBSERVABLE_INCLUDE", ID: ObservableInclude, BestInverse: NotAGate, ArgCount: 1,
		Flags: OnlyTargetsMeasurementRecord | HasNoEffectOnQubits | ArgsAreUnsignedIntegers, Category: "Annotations"})
	reg(Info{Name: "TICK", ID: Tick, BestInverse: NotAGate, ArgCount: 0,
		Flags: TakesNoTargets | HasNoEffectOnQubits, Category: "Annotations"})
	reg(Info{Name: "QUBIT_COORDS", ID: QubitCoords, BestInverse: NotAGate, ArgCount: ArgCountAny,
		Flags: HasNoEffectOnQubits | IsSingleQubitGate, Category: "Annotations"})
	reg(Info{Name: "SHIFT_COORDS", ID: ShiftCoords, BestInverse: NotAGate, ArgCount: ArgCountAny,
		Flags: TakesNoTargets | HasNoEffectOnQubits, Category: "Annotations"})
}

func addControlFlow() {
	reg(Info{Name: "REPEAT", ID: Repeat, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsBlock | TakesNoTargets | ArgsAreUnsignedIntegers, Category: "Control flow"})
}

func addCollapsing() {
	reg(Info{Name: "MPAD", ID: MPad, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | TakesNoTargets, Category: "Collapsing"})
	reg(Info{Name: "MX", ID: MX, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "MY", ID: MY, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "M", ID: MZ, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "MRX", ID: MRX, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "MRY", ID: MRY, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "MR", ID: MRZ, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "RX", ID: RX, BestInverse: NotAGate, ArgCount: 0,
		Flags: IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "RY", ID: RY, BestInverse: NotAGate, ArgCount: 0,
		Flags: IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "R", ID: RZ, BestInverse: NotAGate, ArgCount: 0,
		Flags: IsReset | IsSingleQubitGate, Category: "Collapsing"})
	reg(Info{Name: "MPP", ID: MPP, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne,
		Flags: ProducesResults | TargetsPauliString | TargetsCombiners, Category: "Collapsing"})
}

func addControlled() {
	reg(Info{Name: "XCX", ID: XCX, BestInverse: XCX, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "XCY", ID: XCY, BestInverse: XCY, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "XCZ", ID: XCZ, BestInverse: XCZ, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "YCX", ID: YCX, BestInverse: YCX, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "YCY", ID: YCY, BestInverse: YCY, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "YCZ", ID: YCZ, BestInverse: YCZ, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Controlled"})
	reg(Info{Name: "CX", ID: CX, BestInverse: CX, ArgCount: 0, Flags: IsUnitary | TargetsPairs | CanTargetBits, Category: "Controlled"})
	reg(Info{Name: "CY", ID: CY, BestInverse: CY, ArgCount: 0, Flags: IsUnitary | TargetsPairs | CanTargetBits, Category: "Controlled"})
	reg(Info{Name: "CZ", ID: CZ, BestInverse: CZ, ArgCount: 0, Flags: IsUnitary | TargetsPairs | CanTargetBits, Category: "Controlled"})
}

func addHadamard() {
	reg(Info{Name: "H", ID: H, BestInverse: H, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Hadamard-like"})
	reg(Info{Name: "H_XY", ID: H_XY, BestInverse: H_XY, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Hadamard-like"})
	reg(Info{Name: "H_YZ", ID: H_YZ, BestInverse: H_YZ, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Hadamard-like"})
}

func addNoisy() {
	reg(Info{Name: "DEPOLARIZE1", ID: Depolarize1, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Noise"})
	reg(Info{Name: "DEPOLARIZE2", ID: Depolarize2, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | TargetsPairs, Category: "Noise"})
	reg(Info{Name: "X_ERROR", ID: XError, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Noise"})
	reg(Info{Name: "Y_ERROR", ID: YError, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Noise"})
	reg(Info{Name: "Z_ERROR", ID: ZError, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Noise"})
	reg(Info{Name: "PAULI_CHANNEL_1", ID: PauliChannel1, BestInverse: NotAGate, ArgCount: 3,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Noise"})
	reg(Info{Name: "PAULI_CHANNEL_2", ID: PauliChannel2, BestInverse: NotAGate, ArgCount: 15,
		Flags: IsNoisy | ArgsAreDisjointProbabilities | TargetsPairs, Category: "Noise"})
	reg(Info{Name: "E", ID: CorrelatedError, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | TargetsPauliString | IsNotFusable, Category: "Noise"})
	reg(Info{Name: "ELSE_CORRELATED_ERROR", ID: ElseCorrelatedError, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | TargetsPauliString | IsNotFusable, Category: "Noise"})
}

func addHeralded() {
	reg(Info{Name: "HERALDED_ERASE", ID: HeraldedErase, BestInverse: NotAGate, ArgCount: 1,
		Flags: IsNoisy | ProducesResults | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Heralded noise"})
	reg(Info{Name: "HERALDED_PAULI_CHANNEL_1", ID: HeraldedPauliChannel1, BestInverse: NotAGate, ArgCount: 4,
		Flags: IsNoisy | ProducesResults | ArgsAreDisjointProbabilities | IsSingleQubitGate, Category: "Heralded noise"})
}

func addPauli() {
	reg(Info{Name: "I", ID: I, BestInverse: I, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Pauli"})
	reg(Info{Name: "X", ID: X, BestInverse: X, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Pauli"})
	reg(Info{Name: "Y", ID: Y, BestInverse: Y, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Pauli"})
	reg(Info{Name: "Z", ID: Z, BestInverse: Z, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Pauli"})
}

func addPeriod3() {
	reg(Info{Name: "C_XYZ", ID: C_XYZ, BestInverse: C_ZYX, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 3"})
	reg(Info{Name: "C_ZYX", ID: C_ZYX, BestInverse: C_XYZ, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 3"})
}

func addPeriod4() {
	reg(Info{Name: "SQRT_X", ID: SqrtX, BestInverse: SqrtXDag, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
	reg(Info{Name: "SQRT_X_DAG", ID: SqrtXDag, BestInverse: SqrtX, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
	reg(Info{Name: "SQRT_Y", ID: SqrtY, BestInverse: SqrtYDag, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
	reg(Info{Name: "SQRT_Y_DAG", ID: SqrtYDag, BestInverse: SqrtY, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
	reg(Info{Name: "S", ID: S, BestInverse: SDag, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
	reg(Info{Name: "S_DAG", ID: SDag, BestInverse: S, ArgCount: 0, Flags: IsUnitary | IsSingleQubitGate, Category: "Period 4"})
}

func addPauliProduct() {
	reg(Info{Name: "SQRT_XX", ID: SqrtXX, BestInverse: SqrtXXDag, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
	reg(Info{Name: "SQRT_XX_DAG", ID: SqrtXXDag, BestInverse: SqrtXX, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
	reg(Info{Name: "SQRT_YY", ID: SqrtYY, BestInverse: SqrtYYDag, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
	reg(Info{Name: "SQRT_YY_DAG", ID: SqrtYYDag, BestInverse: SqrtYY, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
	reg(Info{Name: "SQRT_ZZ", ID: SqrtZZ, BestInverse: SqrtZZDag, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
	reg(Info{Name: "SQRT_ZZ_DAG", ID: SqrtZZDag, BestInverse: SqrtZZ, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Pauli product"})
}

func addSwaps() {
	reg(Info{Name: "SWAP", ID: Swap, BestInverse: Swap, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Swap"})
	reg(Info{Name: "ISWAP", ID: ISwap, BestInverse: ISwapDag, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Swap"})
	reg(Info{Name: "CXSWAP", ID: CXSwap, BestInverse: SwapCX, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Swap"})
	reg(Info{Name: "SWAPCX", ID: SwapCX, BestInverse: CXSwap, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Swap"})
	reg(Info{Name: "ISWAP_DAG", ID: ISwapDag, BestInverse: ISwap, ArgCount: 0, Flags: IsUnitary | TargetsPairs, Category: "Swap"})
}

func addPairMeasure() {
	reg(Info{Name: "MXX", ID: MXX, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne, Flags: ProducesResults | TargetsPairs, Category: "Pair measurement"})
	reg(Info{Name: "MYY", ID: MYY, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne, Flags: ProducesResults | TargetsPairs, Category: "Pair measurement"})
	reg(Info{Name: "MZZ", ID: MZZ, BestInverse: NotAGate, ArgCount: ArgCountZeroOrOne, Flags: ProducesResults | TargetsPairs, Category: "Pair measurement"})
}

// NumDefinedGates is the count of real (non-NOT_A_GATE) entries.
const NumDefinedGates = int(numDefinedGates) - 1
