package pattern

var catalog = map[string]string{
	"block": `
OO
OO`,
	"beehive": `
.OO.
O..O
.OO.`,
	"blinker": `
OOO`,
	"toad": `
.OOO
OOO.`,
	"beacon": `
OO..
OO..
..OO
..OO`,
	"glider": `
.O.
..O
OOO`,
	"lwss": `
.O..O
O....
O...O
OOOO.`,
	"r-pentomino": `
.OO
OO.
.O.`,
	"diehard": `
......O.
OO......
.O...OOO`,
	"acorn": `
.O.....
...O...
OO..OOO`,
	"pulsar": `
..OOO...OOO..
.............
O....O.O....O
O....O.O....O
O....O.O....O
..OOO...OOO..
.............
..OOO...OOO..
O....O.O....O
O....O.O....O
O....O.O....O
.............
..OOO...OOO..`,
	"gosper-glider-gun": `
........................O...........
......................O.O...........
............OO......OO............OO
...........O...O....OO............OO
OO........O.....O...OO..............
OO........O...O.OO....O.O...........
..........O.....O.......O...........
...........O...O....................
............OO......................`,
}
