package gap

// VisitNumberGap agrupa visitas pelo número da visita do visitante
var VisitNumberGap = Gap{
	Closed(1, 1), Closed(2, 2), Closed(3, 3), Closed(4, 4),
	Closed(5, 5), Closed(6, 6), Closed(7, 7), Closed(8, 8),
	Closed(9, 14), Closed(15, 25), Closed(26, 50), Closed(51, 100),
	AndAbove(100),
}

// DaysSinceLastVisitGap agrupa visitas pelos dias desde a visita anterior
var DaysSinceLastVisitGap = Gap{
	Closed(0, 0), Closed(1, 1), Closed(2, 2), Closed(3, 3),
	Closed(4, 4), Closed(5, 5), Closed(6, 6), Closed(7, 7),
	Closed(8, 14), Closed(15, 30), Closed(31, 60), Closed(61, 120),
	Closed(121, 364), AndAbove(364),
}

// SecondsGap agrupa visitas pela duração em segundos
var SecondsGap = Gap{
	Closed(0, 10), Closed(11, 30), Closed(31, 60), Closed(61, 120),
	Closed(121, 240), Closed(241, 420), Closed(421, 600), Closed(601, 900),
	Closed(901, 1800), AndAbove(1800),
}
