package main

// gr17LowerTriangle is the lower-triangular (including the zero diagonal)
// distance rows of the TSPLIB gr17 instance — 17 cities, symmetric,
// known optimal tour length 2085. Embedded as a literal per the
// exclusion of TSPLIB file parsing from scope: this is the one instance
// the bound command ships with, not a general loader.
var gr17LowerTriangle = [][]int64{
	{0},
	{633, 0},
	{257, 390, 0},
	{91, 661, 228, 0},
	{412, 227, 169, 383, 0},
	{150, 488, 112, 120, 267, 0},
	{80, 572, 196, 77, 351, 63, 0},
	{134, 530, 154, 105, 309, 34, 29, 0},
	{259, 555, 372, 175, 338, 264, 232, 249, 0},
	{505, 289, 262, 476, 196, 360, 444, 402, 495, 0},
	{353, 282, 110, 324, 61, 208, 292, 250, 352, 154, 0},
	{324, 638, 437, 240, 421, 329, 297, 314, 95, 578, 435, 0},
	{70, 567, 191, 27, 346, 83, 47, 68, 189, 439, 287, 254, 0},
	{211, 466, 74, 182, 243, 105, 150, 108, 326, 336, 184, 391, 145, 0},
	{268, 420, 53, 239, 199, 123, 180, 140, 364, 240, 140, 448, 157, 84, 0},
	{246, 745, 472, 237, 528, 364, 332, 349, 202, 685, 542, 157, 289, 390, 422, 0},
	{121, 518, 142, 84, 297, 35, 29, 36, 236, 390, 238, 301, 55, 137, 164, 318, 0},
}

// gr17Weights expands the lower-triangular fixture into a full symmetric
// weight matrix.
func gr17Weights() [][]int64 {
	n := len(gr17LowerTriangle)
	w := make([][]int64, n)
	for i := range w {
		w[i] = make([]int64, n)
	}
	for i, row := range gr17LowerTriangle {
		for j, v := range row {
			w[i][j] = v
			w[j][i] = v
		}
	}
	return w
}
